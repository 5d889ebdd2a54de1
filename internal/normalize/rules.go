package normalize

import (
	"regexp"
	"strings"
)

// Rule is a single named title-cleaning step.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Rules is the ordered title-cleaning pipeline. Order matters: later rules
// assume the markers stripped by earlier ones are already gone.
var Rules = []Rule{
	{"bitrate", replaceAll(`\d+kbps`, "")},
	{"author-prefix", replaceAll(`^[\w\s.-]+-\s*`, "")},
	{"narrator", replaceAll(`(?i)czyt.*`, "")},
	{"before-last-hyphen", replaceFirst(`.*-`, "")},
	{"volume-t", replaceFirst(`(?i).*?(T[\s.]?\d{1,3}).*?(.*)$`, "${2}")},
	{"volume-tom", replaceFirst(`(?i).*?(Tom[\s.]?\d{1,3}).*?(.*)$`, "${2}")},
	{"track-prefix", replaceAll(`.*?\(\d{1,3}\)\s*`, "")},
	{"volume-etap", replaceFirst(`(?i).*?(Etap[\s.]?\d{1,3}).*?(.*)$`, "${2}")},
	{"year", replaceAll(`\(\d{4}\)`, "")},
	{"parenthesized", replaceAll(`\(.*?\)`, "")},
	{"bracketed", replaceAll(`\[.*?\]`, "")},
	{"open-paren", replaceAll(`\(`, " ")},
	{"non-alphanumeric", replaceAll(`[^\p{L}\d]`, " ")},
	{"dots", replaceAll(`\.`, " ")},
	{"whitespace", replaceAll(`\s+`, " ")},
	{"bourne-fix", replaceAll(`Bournea`, "Bourne")},
	{"marketing-suffix", replaceFirst(`(?i)superprodukcja`, "")},
	{"trim", strings.TrimSpace},
}

func replaceAll(pattern, repl string) func(string) string {
	re := regexp.MustCompile(pattern)
	return func(s string) string {
		return re.ReplaceAllString(s, repl)
	}
}

// replaceFirst rewrites only the leftmost match, leaving the rest of s untouched.
func replaceFirst(pattern, repl string) func(string) string {
	re := regexp.MustCompile(pattern)
	return func(s string) string {
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return s
		}
		expanded := re.ExpandString(nil, repl, s, loc)
		return s[:loc[0]] + string(expanded) + s[loc[1]:]
	}
}
