package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/eval/dataset"
	"github.com/dark1alex/lubimyczytac-abs/internal/eval/metrics"
	"github.com/dark1alex/lubimyczytac-abs/internal/eval/results"
	"github.com/dark1alex/lubimyczytac-abs/internal/lookup"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// Searcher runs a full catalog lookup for live evaluations.
type Searcher interface {
	Search(ctx context.Context, raw models.RawQuery) []models.MetadataRecord
}

type runOptions struct {
	datasetPath string
	sampleSize  int
	outputPath  string
	concurrency int
	baseURL     string

	// searcher is nil for offline runs
	searcher Searcher
}

func executeRun(ctx context.Context, w io.Writer, opts runOptions) (*metrics.AggregateResults, error) {
	live := opts.searcher != nil
	slog.Info("Starting normalizer evaluation", "dataset", opts.datasetPath, "sample", opts.sampleSize, "live", live)

	records, err := dataset.NewLoader(opts.datasetPath).LoadSample(opts.sampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "items", len(records))

	concurrency := opts.concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	evalResults := make([]metrics.EvaluationResult, len(records))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i, record := range records {
		wg.Add(1)
		go func(idx int, record dataset.LabeledQuery) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Debug("Processing item", "id", record.Identifier(idx), "progress", fmt.Sprintf("%d/%d", idx+1, len(records)))
			evalResults[idx] = processItem(ctx, idx, record, opts.searcher)
		}(i, record)
	}
	wg.Wait()

	agg := metrics.AggregateEvaluationResults(evalResults, opts.datasetPath, live)
	agg.PrintSummary(w)

	path, err := results.SaveToYAML(opts.outputPath, results.EvalConfig{
		DatasetPath: opts.datasetPath,
		SampleSize:  opts.sampleSize,
		Live:        live,
		BaseURL:     opts.baseURL,
	}, evalResults)
	if err != nil {
		return agg, fmt.Errorf("failed to save results: %w", err)
	}

	fmt.Fprintf(w, "\nResults saved to: %s\n", path)
	fmt.Fprintf(w, "\nGenerate detailed report with:\n")
	fmt.Fprintf(w, "  lubimyczytac-abs eval report --results %s\n", path)

	return agg, nil
}

func processItem(ctx context.Context, idx int, record dataset.LabeledQuery, searcher Searcher) metrics.EvaluationResult {
	start := time.Now()
	raw := models.RawQuery{Text: record.Query, HintedAuthor: record.HintedAuthor}

	result := metrics.EvaluationResult{
		ID:             record.Identifier(idx),
		Query:          record.Query,
		ExpectedTitle:  record.ExpectedTitle,
		ExpectedAuthor: record.ExpectedAuthor,
		Actual:         lookup.Query(raw),
	}
	result.Comparison = metrics.CompareQuery(record.ExpectedTitle, record.ExpectedAuthor, result.Actual)

	if searcher != nil {
		matches := searcher.Search(ctx, raw)
		if len(matches) > 0 {
			result.MatchedTitle = matches[0].Title
		} else {
			result.Error = "no candidates"
		}
		result.Comparison.AddMatch(record.ExpectedTitle, result.MatchedTitle)
	}

	result.ProcessingTime = time.Since(start)
	return result
}
