package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Live        bool   `yaml:"live"`
	BaseURL     string `yaml:"baseurl,omitempty"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier     string             `yaml:"identifier"`
	Query          string             `yaml:"query"`
	ExpectedTitle  string             `yaml:"expectedtitle"`
	ExpectedAuthor string             `yaml:"expectedauthor,omitempty"`
	Title          string             `yaml:"title"`
	Author         string             `yaml:"author,omitempty"`
	MatchedTitle   string             `yaml:"matchedtitle,omitempty"`
	OverallScore   float64            `yaml:"overallscore"`
	FieldScores    map[string]float64 `yaml:"fieldscores"`
	Error          string             `yaml:"error,omitempty"`
	DurationMillis int64              `yaml:"durationms"`
}

// EvalSpec represents the complete evaluation specification
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Results []EvalResult `yaml:"results"`
}

// NewEvalSpec converts evaluation results into their YAML form
func NewEvalSpec(config EvalConfig, results []metrics.EvaluationResult) EvalSpec {
	spec := EvalSpec{
		Config:  config,
		Results: make([]EvalResult, 0, len(results)),
	}

	for _, r := range results {
		evalResult := EvalResult{
			Identifier:     r.ID,
			Query:          r.Query,
			ExpectedTitle:  r.ExpectedTitle,
			ExpectedAuthor: r.ExpectedAuthor,
			Title:          r.Actual.Title,
			Author:         r.Actual.Author,
			MatchedTitle:   r.MatchedTitle,
			Error:          r.Error,
			DurationMillis: r.ProcessingTime.Milliseconds(),
		}

		if r.Comparison != nil {
			evalResult.OverallScore = r.Comparison.OverallScore
			evalResult.FieldScores = make(map[string]float64, len(r.Comparison.Fields))
			for field, match := range r.Comparison.Fields {
				evalResult.FieldScores[field] = match.Score
			}
		}

		spec.Results = append(spec.Results, evalResult)
	}

	return spec
}

// SaveToYAML writes the results to outputPath, or to a timestamped file under
// evals/ when outputPath is empty. It returns the path written.
func SaveToYAML(outputPath string, config EvalConfig, results []metrics.EvaluationResult) (string, error) {
	if config.Timestamp == "" {
		config.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	if outputPath == "" {
		outputPath = filepath.Join("evals", fmt.Sprintf("normalizer-%s.yaml", config.Timestamp))
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	spec := NewEvalSpec(config, results)
	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return absPath, nil
}

// LoadFromYAML reads a results file written by SaveToYAML
func LoadFromYAML(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return &spec, nil
}
