package metrics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// EvaluationResult represents the outcome for a single labelled query
type EvaluationResult struct {
	ID             string
	Query          string
	ExpectedTitle  string
	ExpectedAuthor string
	Actual         models.NormalizedQuery
	MatchedTitle   string
	Comparison     *QueryComparison
	ProcessingTime time.Duration
	Error          string // live lookup failed or found nothing
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int
	SuccessCount int
	FailureCount int

	Fields          map[string]*FieldStats
	OverallAccuracy float64

	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	Results []EvaluationResult

	EvaluationDate time.Time
	DatasetPath    string
	Live           bool
}

// FieldStats contains statistics for one compared field
type FieldStats struct {
	ExactMatches  int
	FuzzyMatches  int
	NoMatches     int
	MissingFields int
	AverageScore  float64
	Scores        []float64
}

// AggregateEvaluationResults aggregates multiple evaluation results
func AggregateEvaluationResults(results []EvaluationResult, datasetPath string, live bool) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Fields:         make(map[string]*FieldStats),
		Results:        results,
		EvaluationDate: time.Now(),
		DatasetPath:    datasetPath,
		Live:           live,
	}

	totalOverallScore := 0.0
	var successDuration time.Duration

	for _, result := range results {
		agg.TotalProcessingTime += result.ProcessingTime

		if result.Error != "" {
			agg.FailureCount++
		} else {
			agg.SuccessCount++
			successDuration += result.ProcessingTime
		}

		if result.Comparison == nil {
			continue
		}

		for field, match := range result.Comparison.Fields {
			stats, ok := agg.Fields[field]
			if !ok {
				stats = &FieldStats{Scores: []float64{}}
				agg.Fields[field] = stats
			}
			aggregateFieldStats(stats, match)
		}

		if result.Error == "" {
			totalOverallScore += result.Comparison.OverallScore
		}
	}

	for _, stats := range agg.Fields {
		stats.AverageScore = calculateAverage(stats.Scores)
	}
	if agg.SuccessCount > 0 {
		agg.OverallAccuracy = totalOverallScore / float64(agg.SuccessCount)
		agg.AverageProcessingTime = successDuration / time.Duration(agg.SuccessCount)
	}

	return agg
}

// aggregateFieldStats updates field statistics
func aggregateFieldStats(stats *FieldStats, match FieldMatch) {
	stats.Scores = append(stats.Scores, match.Score)

	switch match.Method {
	case "exact", "both_missing":
		stats.ExactMatches++
	case "fuzzy_high", "fuzzy_medium", "substring":
		stats.FuzzyMatches++
	case "no_match", "unexpected":
		stats.NoMatches++
	case "actual_missing":
		stats.MissingFields++
	}
}

// calculateAverage calculates the average of a slice of scores
func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}

	return sum / float64(len(scores))
}

// PrintSummary writes a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "NORMALIZER EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Dataset: %s\n", a.DatasetPath)
	fmt.Fprintf(w, "Live catalog lookups: %t\n", a.Live)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROCESSING STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Total Records: %d\n", a.TotalRecords)
	if a.TotalRecords > 0 {
		fmt.Fprintf(w, "Successful: %d (%.1f%%)\n", a.SuccessCount, float64(a.SuccessCount)/float64(a.TotalRecords)*100)
		fmt.Fprintf(w, "Failed: %d (%.1f%%)\n", a.FailureCount, float64(a.FailureCount)/float64(a.TotalRecords)*100)
	}
	fmt.Fprintf(w, "Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Fprintf(w, "Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FIELD-LEVEL ACCURACY")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, field := range FieldOrder {
		if stats, ok := a.Fields[field]; ok {
			printFieldStats(w, field, stats)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERALL SCORE")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Overall Accuracy: %.2f%% (%.3f)\n", a.OverallAccuracy*100, a.OverallAccuracy)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// printFieldStats prints statistics for a single field
func printFieldStats(w io.Writer, fieldName string, stats *FieldStats) {
	fmt.Fprintf(w, "\n%s:\n", fieldName)
	fmt.Fprintf(w, "  Average Score: %.2f%% (%.3f)\n", stats.AverageScore*100, stats.AverageScore)
	fmt.Fprintf(w, "  Exact Matches: %d\n", stats.ExactMatches)
	fmt.Fprintf(w, "  Fuzzy Matches: %d\n", stats.FuzzyMatches)
	fmt.Fprintf(w, "  No Matches: %d\n", stats.NoMatches)
	fmt.Fprintf(w, "  Missing Fields: %d\n", stats.MissingFields)
}
