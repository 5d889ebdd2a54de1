package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dark1alex/lubimyczytac-abs/internal/abs"
	"github.com/dark1alex/lubimyczytac-abs/internal/config"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSearchCmd() *cobra.Command {
	var author string
	var output string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Look up a single file name against the catalog",
		Long: `Runs the same pipeline as the HTTP provider for one query and prints
the matches in the Audiobookshelf provider format.`,
		Example: `  lubimyczytac-abs search "J. Kowalski - Wiedzmin T.3 Krew Elfow 128kbps"
  lubimyczytac-abs search "Lalka" --author "Bolesław Prus" --output yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			raw := models.RawQuery{Text: strings.Join(args, " "), HintedAuthor: author}
			records := newLookupService(cfg).Search(cmd.Context(), raw)

			return writeOutput(cmd.OutOrStdout(), output, abs.NewResponse(records))
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Author hint, used when the query has none")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")
	addCatalogFlags(cmd)

	return cmd
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
