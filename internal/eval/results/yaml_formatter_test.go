package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/eval/metrics"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

func sampleResults() []metrics.EvaluationResult {
	comparison := metrics.CompareQuery("Krew elfów", "Andrzej Sapkowski", models.NormalizedQuery{
		Title:  "Krew elfów",
		Author: "Andrzej Sapkowski",
	})
	return []metrics.EvaluationResult{
		{
			ID:             "1",
			Query:          "Andrzej Sapkowski - Krew elfów",
			ExpectedTitle:  "Krew elfów",
			ExpectedAuthor: "Andrzej Sapkowski",
			Actual:         models.NormalizedQuery{Title: "Krew elfów", Author: "Andrzej Sapkowski"},
			Comparison:     comparison,
			ProcessingTime: 1500 * time.Millisecond,
		},
		{
			ID:             "2",
			Query:          "Lalka",
			ExpectedTitle:  "Lalka",
			Actual:         models.NormalizedQuery{Title: "Lalka"},
			Error:          "no candidates",
			ProcessingTime: 10 * time.Millisecond,
		},
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "run.yaml")

	path, err := SaveToYAML(out, EvalConfig{DatasetPath: "queries.yaml", SampleSize: 2, Live: true}, sampleResults())
	if err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}
	if path != out {
		t.Errorf("Expected path %s, got %s", out, path)
	}

	spec, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if spec.Config.DatasetPath != "queries.yaml" || !spec.Config.Live {
		t.Errorf("Unexpected config: %+v", spec.Config)
	}
	if spec.Config.Timestamp == "" {
		t.Error("Expected timestamp to be filled in")
	}
	if len(spec.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(spec.Results))
	}

	first := spec.Results[0]
	if first.OverallScore != 1.0 {
		t.Errorf("Expected overall score 1.0, got %f", first.OverallScore)
	}
	if first.FieldScores[metrics.FieldTitle] != 1.0 {
		t.Errorf("Expected title score 1.0, got %v", first.FieldScores)
	}
	if first.DurationMillis != 1500 {
		t.Errorf("Expected 1500ms, got %d", first.DurationMillis)
	}

	if spec.Results[1].Error != "no candidates" {
		t.Errorf("Expected error to round-trip, got %q", spec.Results[1].Error)
	}
}

func TestSaveToYAMLDefaultPath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	path, err := SaveToYAML("", EvalConfig{Timestamp: "2026-01-02_03-04-05"}, nil)
	if err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("evals", "normalizer-2026-01-02_03-04-05.yaml")) {
		t.Errorf("Unexpected default path %s", path)
	}
}

func TestLoadFromYAMLMissing(t *testing.T) {
	if _, err := LoadFromYAML("/nonexistent/run.yaml"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
