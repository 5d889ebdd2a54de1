package evalcmd

import (
	"fmt"
	"os"

	"github.com/dark1alex/lubimyczytac-abs/internal/config"
	"github.com/spf13/cobra"
)

// SearcherFactory builds the catalog pipeline used by live runs.
type SearcherFactory func(cfg *config.Config) Searcher

// NewRunCmd creates the run command. Catalog flags are registered by the caller.
func NewRunCmd(newSearcher SearcherFactory) *cobra.Command {
	var datasetPath string
	var outputPath string
	var sampleSize int
	var concurrency int
	var live bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Measure query normalizer accuracy over a labelled dataset",
		Long: `Normalizes every query in a labelled dataset and scores the extracted
title and author against the expected values using exact, substring and
Levenshtein matching.

The dataset is a .yaml, .jsonl or .parquet file of records with the fields
id, query, hinted_author, expected_title and expected_author.

With --live each query is also looked up in the catalog and the first match's
title is scored. Live runs are throttled like the server, so expect roughly one
request per throttle interval.`,
		Example: `  # Offline run over a YAML dataset
  lubimyczytac-abs eval run --dataset testdata/queries.yaml

  # First 20 records, results to a fixed path
  lubimyczytac-abs eval run --dataset queries.jsonl --sample 20 --output evals/latest.yaml

  # Include catalog lookups
  lubimyczytac-abs eval run --dataset queries.parquet --sample 5 --live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", datasetPath)
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			opts := runOptions{
				datasetPath: datasetPath,
				sampleSize:  sampleSize,
				outputPath:  outputPath,
				concurrency: concurrency,
			}
			if live {
				opts.searcher = newSearcher(cfg)
				opts.baseURL = cfg.BaseURL
			}

			_, err = executeRun(cmd.Context(), cmd.OutOrStdout(), opts)
			return err
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the labelled dataset (.yaml, .jsonl or .parquet)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Results file (default evals/normalizer-<timestamp>.yaml)")
	cmd.Flags().IntVar(&sampleSize, "sample", -1, "Number of records to evaluate (-1 for all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of records processed in parallel")
	cmd.Flags().BoolVar(&live, "live", false, "Also look each query up in the catalog")

	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	var resultsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved evaluation results file",
		Example: `  lubimyczytac-abs eval report --results evals/normalizer-2026-01-02_03-04-05.yaml
  lubimyczytac-abs eval report --results evals/latest.yaml --format csv > latest.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(cmd.OutOrStdout(), resultsPath, format)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Path to a results YAML file")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")

	_ = cmd.MarkFlagRequired("results")
	return cmd
}
