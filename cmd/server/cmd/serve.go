package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jaberDevHub/help-hive-server-side/internal/api"
	"github.com/jaberDevHub/help-hive-server-side/internal/config"
	"github.com/jaberDevHub/help-hive-server-side/internal/metrics"
	"github.com/jaberDevHub/help-hive-server-side/internal/storage/mongodb"
	"github.com/jaberDevHub/help-hive-server-side/internal/telemetry"
)

func newServeCommand() *cobra.Command {
	var (
		serverHost string
		serverPort int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HelpHive HTTP server",
		Long: `Start the HelpHive HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (and an optional .env file)
- Connect to MongoDB and create the indexes the API relies on
- Seed sample events when the events collection is empty
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  helphive-server serve

  # Start on a specific host and port
  helphive-server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  helphive-server serve --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if serverHost != "" {
				cfg.Server.Host = serverHost
			}
			if serverPort != 0 {
				cfg.Server.Port = serverPort
			}
			return runServer(cfg)
		},
	}

	cmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	cmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 5000)")

	return cmd
}

func runServer(cfg config.Config) error {
	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("environment", cfg.Environment).Msg("starting helphive server")

	metrics.Init(Version, GitCommit, BuildDate)

	shutdownTracing, err := telemetry.InitTracing(context.Background(), cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("tracing init failed: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	// The initial connection is the one failure that exits non-zero;
	// everything after this point is reported per request instead.
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

	if cfg.Seed.OnBoot {
		if err := store.SeedIfEmpty(context.Background(), logger); err != nil {
			logger.Error().Err(err).Msg("seeding failed")
		}
	}

	// Poll database health into the metrics registry.
	dbCollector := metrics.NewDBCollector(store)
	collectorCtx, collectorCancel := context.WithCancel(context.Background())
	go dbCollector.Start(collectorCtx, 15*time.Second)
	defer collectorCancel()
	defer dbCollector.Stop()

	router, err := api.NewRouter(cfg, logger, store, Version, GitCommit, BuildDate)
	if err != nil {
		return fmt.Errorf("router init failed: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	return gracefulShutdown(server, logger)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	// Flags beat environment variables.
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

func gracefulShutdown(server *http.Server, logger zerolog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
