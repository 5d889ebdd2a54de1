package cmd

import (
	"github.com/dark1alex/lubimyczytac-abs/internal/config"
	"github.com/dark1alex/lubimyczytac-abs/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Query normalizer evaluation tools",
		Long: `Evaluation tools for measuring how well noisy file names are reduced to
a title and author, optionally checking the catalog's top match as well.`,
	}

	run := evalcmd.NewRunCmd(func(cfg *config.Config) evalcmd.Searcher {
		return newLookupService(cfg)
	})
	addCatalogFlags(run)

	cmd.AddCommand(run)
	cmd.AddCommand(evalcmd.NewReportCmd())

	return cmd
}
