package cmd

import (
	"log/slog"
	"os"

	"github.com/dark1alex/lubimyczytac-abs/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lubimyczytac-abs",
		Short: "Audiobookshelf metadata provider backed by lubimyczytac.pl",
		Long: `lubimyczytac-abs resolves noisy audiobook and ebook file names into
bibliographic metadata scraped from the lubimyczytac.pl catalog.

It runs as an Audiobookshelf custom metadata provider (serve), and offers
one-off lookups and tools for tuning the query normalizer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
			return nil
		},
	}

	cmd.PersistentFlags().String(config.KeyLogLevel, "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
