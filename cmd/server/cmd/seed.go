package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaberDevHub/help-hive-server-side/internal/config"
	"github.com/jaberDevHub/help-hive-server-side/internal/storage/mongodb"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample events if the database is empty",
		Long: `Connects to MongoDB and, when the events collection is empty, inserts
a fixed set of sample community events plus two join records. A non-empty
collection is left untouched, so running this twice is harmless.

The server does the same thing at boot unless SEED_ON_BOOT=false; this
command exists for populating a database ahead of the first start.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger := config.NewLogger(cfg.Logging)

			client, err := mongodb.Connect(context.Background(), cfg.Mongo)
			if err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}
			store := mongodb.NewStore(client, cfg.Mongo)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := store.Close(ctx); err != nil {
					logger.Error().Err(err).Msg("mongodb disconnect error")
				}
			}()

			if err := store.EnsureIndexes(context.Background()); err != nil {
				return fmt.Errorf("index bootstrap failed: %w", err)
			}
			return store.SeedIfEmpty(context.Background(), logger)
		},
	}
}
