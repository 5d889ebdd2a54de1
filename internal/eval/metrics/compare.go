package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// Field names used in comparisons
const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldTopMatch = "match" // title of the top catalog match, live runs only
)

// FieldWeights weight each field's score in the overall score
var FieldWeights = map[string]float64{
	FieldTitle:    0.6,
	FieldAuthor:   0.4,
	FieldTopMatch: 0.6,
}

// FieldOrder is the stable order fields are reported in
var FieldOrder = []string{FieldTitle, FieldAuthor, FieldTopMatch}

// FieldMatch represents the comparison result for a single field
type FieldMatch struct {
	Expected string  `json:"expected" yaml:"expected"`
	Actual   string  `json:"actual" yaml:"actual"`
	Score    float64 `json:"score" yaml:"score"` // 0.0 to 1.0
	Method   string  `json:"method" yaml:"method"`
	Notes    string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// QueryComparison holds the field comparisons for one labelled query
type QueryComparison struct {
	Fields       map[string]FieldMatch `json:"fields" yaml:"fields"`
	OverallScore float64               `json:"overall_score" yaml:"overallscore"`
}

// CompareQuery scores a normalized query against the expected title and author.
func CompareQuery(expectedTitle, expectedAuthor string, actual models.NormalizedQuery) *QueryComparison {
	c := &QueryComparison{Fields: make(map[string]FieldMatch)}
	c.Fields[FieldTitle] = compareField(expectedTitle, actual.Title)
	c.Fields[FieldAuthor] = compareField(expectedAuthor, actual.Author)
	c.score()
	return c
}

// AddMatch scores the title of the top catalog match and updates the overall score.
func (c *QueryComparison) AddMatch(expectedTitle, matchedTitle string) {
	c.Fields[FieldTopMatch] = compareField(expectedTitle, matchedTitle)
	c.score()
}

func (c *QueryComparison) score() {
	var total, weights float64
	for _, field := range FieldOrder {
		match, ok := c.Fields[field]
		if !ok {
			continue
		}
		w := FieldWeights[field]
		total += match.Score * w
		weights += w
	}
	if weights > 0 {
		c.OverallScore = total / weights
	}
}

// compareField performs detailed field comparison with fuzzy matching
func compareField(expected, actual string) FieldMatch {
	match := FieldMatch{
		Expected: expected,
		Actual:   actual,
	}

	expNorm := normalizeForComparison(expected)
	actNorm := normalizeForComparison(actual)

	if expNorm == "" && actNorm == "" {
		match.Score = 1.0
		match.Method = "both_missing"
		match.Notes = "Nothing expected, nothing produced"
		return match
	}

	if expNorm == "" {
		match.Score = 0.0
		match.Method = "unexpected"
		match.Notes = "Produced a value where none was expected"
		return match
	}

	if actNorm == "" {
		match.Score = 0.0
		match.Method = "actual_missing"
		match.Notes = "Expected value was not produced"
		return match
	}

	if expNorm == actNorm {
		match.Score = 1.0
		match.Method = "exact"
		match.Notes = "Exact match"
		return match
	}

	if strings.Contains(actNorm, expNorm) || strings.Contains(expNorm, actNorm) {
		match.Score = 0.8
		match.Method = "substring"
		match.Notes = "Partial match (substring found)"
		return match
	}

	similarity := calculateSimilarity(expNorm, actNorm)
	match.Score = similarity
	if similarity > 0.7 {
		match.Method = "fuzzy_high"
		match.Notes = fmt.Sprintf("High similarity (%.2f)", similarity)
	} else if similarity > 0.4 {
		match.Method = "fuzzy_medium"
		match.Notes = fmt.Sprintf("Medium similarity (%.2f)", similarity)
	} else {
		match.Method = "no_match"
		match.Notes = fmt.Sprintf("Low similarity (%.2f)", similarity)
	}

	return match
}

var punctuation = regexp.MustCompile(`[^\p{L}\d\s]`)

// normalizeForComparison lowercases, drops punctuation and collapses whitespace
func normalizeForComparison(text string) string {
	text = strings.ToLower(text)
	text = punctuation.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// calculateSimilarity calculates similarity ratio (0.0 to 1.0) using Levenshtein distance
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(r1, r2)
	maxLen := max(len(r1), len(r2))

	return 1.0 - (float64(distance) / float64(maxLen))
}

// levenshteinDistance calculates the edit distance between two rune slices
func levenshteinDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
