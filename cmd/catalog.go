package cmd

import (
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/catalog"
	"github.com/dark1alex/lubimyczytac-abs/internal/config"
	"github.com/dark1alex/lubimyczytac-abs/internal/lookup"
	"github.com/dark1alex/lubimyczytac-abs/internal/throttle"
	"github.com/spf13/cobra"
)

// addCatalogFlags registers the flags shared by every command that talks to the catalog.
func addCatalogFlags(cmd *cobra.Command) {
	defaults := config.Defaults()
	cmd.Flags().String(config.KeyBaseURL, defaults[config.KeyBaseURL].(string), "Catalog base URL")
	cmd.Flags().Duration(config.KeyThrottleInterval, defaults[config.KeyThrottleInterval].(time.Duration), "Minimum spacing between catalog requests")
	cmd.Flags().Duration(config.KeyFetchTimeout, defaults[config.KeyFetchTimeout].(time.Duration), "Timeout for a single catalog request")
	cmd.Flags().String(config.KeyUserAgent, defaults[config.KeyUserAgent].(string), "User-Agent sent to the catalog")
}

// newLookupService builds the lookup pipeline with a single process-wide throttle.
func newLookupService(cfg *config.Config) *lookup.Service {
	th := throttle.New(cfg.ThrottleInterval)
	client := catalog.NewClient(cfg.BaseURL, th,
		catalog.WithTimeout(cfg.FetchTimeout),
		catalog.WithUserAgent(cfg.UserAgent),
	)
	return lookup.NewService(client)
}
