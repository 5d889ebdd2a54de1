package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dark1alex/lubimyczytac-abs/internal/eval/metrics"
	"github.com/dark1alex/lubimyczytac-abs/internal/eval/results"
)

// Summary condenses a saved results file
type Summary struct {
	TotalRecords    int                `json:"total_records"`
	SuccessfulEvals int                `json:"successful_evals"`
	FailedEvals     int                `json:"failed_evals"`
	AverageScore    float64            `json:"average_score"`
	MedianScore     float64            `json:"median_score"`
	MinScore        float64            `json:"min_score"`
	MaxScore        float64            `json:"max_score"`
	FieldAccuracies map[string]float64 `json:"field_accuracies"`
}

func executeReport(w io.Writer, resultsPath, format string) error {
	spec, err := results.LoadFromYAML(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(w, spec)
	case "json":
		return printJSONReport(w, spec)
	case "csv":
		return printCSVReport(w, spec)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func calculateSummary(evalResults []results.EvalResult) Summary {
	summary := Summary{
		TotalRecords:    len(evalResults),
		FieldAccuracies: make(map[string]float64),
	}

	var scores []float64
	fieldScores := make(map[string][]float64)

	for _, result := range evalResults {
		if result.Error != "" {
			summary.FailedEvals++
			continue
		}

		summary.SuccessfulEvals++
		scores = append(scores, result.OverallScore)

		for field, score := range result.FieldScores {
			fieldScores[field] = append(fieldScores[field], score)
		}
	}

	if len(scores) > 0 {
		var total float64
		for _, score := range scores {
			total += score
		}
		summary.AverageScore = total / float64(len(scores))

		sort.Float64s(scores)
		mid := len(scores) / 2
		if len(scores)%2 == 0 {
			summary.MedianScore = (scores[mid-1] + scores[mid]) / 2
		} else {
			summary.MedianScore = scores[mid]
		}

		summary.MinScore = scores[0]
		summary.MaxScore = scores[len(scores)-1]

		for field, scores := range fieldScores {
			var total float64
			for _, score := range scores {
				total += score
			}
			summary.FieldAccuracies[field] = total / float64(len(scores))
		}
	}

	return summary
}

func printTextReport(w io.Writer, spec *results.EvalSpec) error {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Query Normalizer Evaluation Report")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Dataset:   %s\n", spec.Config.DatasetPath)
	fmt.Fprintf(w, "Timestamp: %s\n", spec.Config.Timestamp)
	fmt.Fprintf(w, "Live:      %t\n", spec.Config.Live)

	summary := calculateSummary(spec.Results)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Records:      %d\n", summary.TotalRecords)
	fmt.Fprintf(w, "Successful Evals:   %d\n", summary.SuccessfulEvals)
	fmt.Fprintf(w, "Failed Evals:       %d\n", summary.FailedEvals)
	fmt.Fprintf(w, "Average Score:      %.2f%%\n", summary.AverageScore*100)
	fmt.Fprintf(w, "Median Score:       %.2f%%\n", summary.MedianScore*100)
	fmt.Fprintf(w, "Min Score:          %.2f%%\n", summary.MinScore*100)
	fmt.Fprintf(w, "Max Score:          %.2f%%\n", summary.MaxScore*100)
	fmt.Fprintln(w, "Field Accuracies:")
	for _, field := range metrics.FieldOrder {
		if acc, ok := summary.FieldAccuracies[field]; ok {
			fmt.Fprintf(w, "  %s: %.2f%%\n", field, acc*100)
		}
	}

	fmt.Fprintln(w, "\nDetailed Results:")
	fmt.Fprintln(w, "========================================")

	for i, result := range spec.Results {
		fmt.Fprintf(w, "\n[%d] %s: %s\n", i+1, result.Identifier, truncate(result.Query, 80))

		if result.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", result.Error)
		}

		fmt.Fprintf(w, "  Overall Score: %.2f%%\n", result.OverallScore*100)
		fmt.Fprintf(w, "  Title:  %q (expected %q)\n", result.Title, result.ExpectedTitle)
		fmt.Fprintf(w, "  Author: %q (expected %q)\n", result.Author, result.ExpectedAuthor)
		if result.MatchedTitle != "" {
			fmt.Fprintf(w, "  Matched: %q\n", result.MatchedTitle)
		}
	}

	return nil
}

func printJSONReport(w io.Writer, spec *results.EvalSpec) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Config  results.EvalConfig   `json:"config"`
		Summary Summary              `json:"summary"`
		Results []results.EvalResult `json:"results"`
	}{spec.Config, calculateSummary(spec.Results), spec.Results})
}

func printCSVReport(w io.Writer, spec *results.EvalSpec) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"ID", "Query", "Title", "Author", "Overall Score", "Error"}
	for _, field := range metrics.FieldOrder {
		header = append(header, "Field_"+field)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range spec.Results {
		row := []string{
			result.Identifier,
			result.Query,
			result.Title,
			result.Author,
			fmt.Sprintf("%.4f", result.OverallScore),
			result.Error,
		}

		for _, field := range metrics.FieldOrder {
			if score, ok := result.FieldScores[field]; ok {
				row = append(row, fmt.Sprintf("%.4f", score))
			} else {
				row = append(row, "")
			}
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return strings.TrimSpace(string(r[:maxLen-3])) + "..."
}
