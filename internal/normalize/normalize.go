// Package normalize turns noisy audiobook file names into a clean
// (title, author) pair suitable for a catalog search.
package normalize

import (
	"strings"

	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// Step records the output of one rule during a traced normalization.
type Step struct {
	Rule   string `json:"rule" yaml:"rule"`
	Output string `json:"output" yaml:"output"`
}

// Normalize derives the search title and author from a raw query string.
// The author is everything before the first hyphen; without a hyphen it is empty.
func Normalize(raw string) models.NormalizedQuery {
	title := raw
	for _, rule := range Rules {
		title = rule.Apply(title)
	}
	return models.NormalizedQuery{
		Title:  title,
		Author: ExtractAuthor(raw),
	}
}

// ExtractAuthor returns the author segment of raw with dots turned into spaces.
func ExtractAuthor(raw string) string {
	before, _, found := strings.Cut(raw, "-")
	if !found {
		return ""
	}
	before = strings.ReplaceAll(before, ".", " ")
	return strings.Join(strings.Fields(before), " ")
}

// Trace runs the title pipeline and returns the intermediate value after each rule.
func Trace(raw string) []Step {
	steps := make([]Step, 0, len(Rules))
	title := raw
	for _, rule := range Rules {
		title = rule.Apply(title)
		steps = append(steps, Step{Rule: rule.Name, Output: title})
	}
	return steps
}
