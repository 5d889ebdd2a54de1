package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/config"
	"github.com/dark1alex/lubimyczytac-abs/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Audiobookshelf metadata provider",
		Long: `Starts the HTTP metadata provider on the specified port.

Audiobookshelf calls GET /search?query=<file name>&author=<author> with an
Authorization header and receives {"matches": [...]} in its custom provider
format. Catalog requests are throttled to one per --throttle-interval.`,
		Example: `  # Start server on default port 3000
  lubimyczytac-abs serve

  # Start server on custom port with verbose logging
  lubimyczytac-abs serve --port 8080 --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			handler := handlers.New(newLookupService(cfg))

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handlers.NewRouter(handler),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Metadata provider listening", "addr", addr, "catalog", cfg.BaseURL, "throttle", cfg.ThrottleInterval)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringP(config.KeyPort, "p", config.Defaults()[config.KeyPort].(string), "Port to listen on")
	addCatalogFlags(cmd)

	return cmd
}
