package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dark1alex/lubimyczytac-abs/internal/lookup"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
	"github.com/dark1alex/lubimyczytac-abs/internal/normalize"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var author string
	var trace bool
	var output string

	cmd := &cobra.Command{
		Use:   "normalize <query>",
		Short: "Show the title and author a query normalizes to",
		Long: `Runs only the query normalizer, without contacting the catalog.

With --trace every cleaning rule is listed with the title it produced,
which makes it easy to see which rule mangled a file name.`,
		Example: `  lubimyczytac-abs normalize "J. Kowalski - Wiedzmin T.3 Krew Elfow 128kbps"
  lubimyczytac-abs normalize --trace "Autor - Saga Tom 2 Koniec (2019) [mp3]"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := models.RawQuery{Text: strings.Join(args, " "), HintedAuthor: author}
			out := cmd.OutOrStdout()

			if trace {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "RULE\tOUTPUT\n")
				fmt.Fprintf(tw, "input\t%q\n", raw.Text)
				for _, step := range normalize.Trace(raw.Text) {
					fmt.Fprintf(tw, "%s\t%q\n", step.Rule, step.Output)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}

			return writeOutput(out, output, lookup.Query(raw))
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Author hint, used when the query has none")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print the output of every normalization rule")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")

	return cmd
}
