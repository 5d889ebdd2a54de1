package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

var (
	unicodeEscape = regexp.MustCompile(`(?:\\u[0-9a-fA-F]{4})+`)
	seriesSuffix  = regexp.MustCompile(`\s*\(tom[^)]*\)\s*$`)
	seriesIndex   = regexp.MustCompile(`\(tom (\d+)`)
)

// languageCodes maps the catalog's Polish language names to ISO 639-2 codes.
var languageCodes = map[string]string{
	"polski":    "pol",
	"angielski": "eng",
}

var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2.01.2006",
	time.RFC3339,
	"2006",
}

// unescapeUnicode replaces literal \uXXXX sequences with the characters they
// encode. Consecutive escapes are decoded together as UTF-16 so surrogate
// pairs become a single character.
func unescapeUnicode(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	return unicodeEscape.ReplaceAllStringFunc(s, func(m string) string {
		units := make([]uint16, 0, len(m)/6)
		for i := 0; i+6 <= len(m); i += 6 {
			code, err := strconv.ParseUint(m[i+2:i+6], 16, 16)
			if err != nil {
				return m
			}
			units = append(units, uint16(code))
		}
		return string(utf16.Decode(units))
	})
}

func mapLanguage(name string) string {
	if code, ok := languageCodes[strings.ToLower(name)]; ok {
		return code
	}
	return name
}

// splitList splits a comma separated list, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseSeries splits "Name (tom N)" into the series name and its index.
// A tom parenthetical without a readable number still gets stripped.
func parseSeries(s string) (string, *int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	var index *int
	if m := seriesIndex.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			index = &n
		}
	}

	return strings.TrimSpace(seriesSuffix.ReplaceAllString(s, "")), index
}

// parseRating converts the catalog's 0-10 score to a 0-5 rating.
func parseRating(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v /= 2
	if v < 0 || v > 5 {
		return nil
	}
	return &v
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

// parsePages reads numberOfPages from a JSON-LD document.
func parsePages(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var ld any
	if err := json.Unmarshal([]byte(raw), &ld); err != nil {
		return nil, err
	}
	if n, ok := findPages(ld); ok {
		return &n, nil
	}
	return nil, nil
}

func findPages(v any) (int, bool) {
	switch node := v.(type) {
	case map[string]any:
		if n, ok := toInt(node["numberOfPages"]); ok {
			return n, true
		}
		for _, child := range node {
			if n, ok := findPages(child); ok {
				return n, true
			}
		}
	case []any:
		for _, child := range node {
			if n, ok := findPages(child); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n <= 0 {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || i <= 0 {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
