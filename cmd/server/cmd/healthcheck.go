package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// healthResponse matches the body written by internal/api/handlers/health.go.
type healthResponse struct {
	Status string         `json:"status"`
	Checks map[string]any `json:"checks,omitempty"`
}

func newHealthcheckCommand() *cobra.Command {
	var (
		timeoutSeconds int
		checkURL       string
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check if the server is healthy",
		Long: `Performs a health check by calling the /api/health endpoint.

This command is used by Docker HEALTHCHECK to monitor container health.
It exits with code 0 if the server is healthy, non-zero otherwise.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := checkURL
			if url == "" {
				port := os.Getenv("SERVER_PORT")
				if port == "" {
					port = "5000"
				}
				url = fmt.Sprintf("http://localhost:%s/api/health", port)
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
			defer cancel()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return fmt.Errorf("create request: %w", err)
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			defer resp.Body.Close()

			var health healthResponse
			if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
				return fmt.Errorf("parse health response: %w", err)
			}

			if resp.StatusCode != http.StatusOK || health.Status != "ok" {
				return fmt.Errorf("unhealthy: http %d, status %q", resp.StatusCode, health.Status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 5, "timeout in seconds")
	cmd.Flags().StringVar(&checkURL, "url", "", "health check URL (default: http://localhost:{SERVER_PORT}/api/health)")

	return cmd
}
