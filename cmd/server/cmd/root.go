package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Flags shared by every subcommand. The logging pair overrides the
// LOG_LEVEL and LOG_FORMAT environment variables when set.
var (
	envFile   string
	logLevel  string
	logFormat string
)

// newRootCommand builds the command tree. Commands are constructed fresh
// on every call so tests can run them in isolation.
func newRootCommand() *cobra.Command {
	serveCmd := newServeCommand()

	rootCmd := &cobra.Command{
		Use:   "helphive-server",
		Short: "HelpHive server, the community volunteer events backend",
		Long: `HelpHive server is the JSON API behind the HelpHive volunteer platform.

It stores community volunteer events in MongoDB and lets signed-in users
publish events, browse upcoming ones, and sign up to help. Sessions ride
on an HTTP-only cookie issued by the auth endpoints.

Running with no subcommand starts the HTTP server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("load env file %s: %w", envFile, err)
				}
				return nil
			}
			// A missing default .env is fine; env vars alone are enough.
			_ = godotenv.Load()
			return nil
		},
		RunE: serveCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "config", "", "path to a .env file to load before reading configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, console) (default: json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newHealthcheckCommand())
	rootCmd.AddCommand(newSeedCommand())

	return rootCmd
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
