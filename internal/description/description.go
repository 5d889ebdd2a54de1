// Package description turns a detail page's raw description markup into
// plain text and appends facts the catalog shows elsewhere on the page.
package description

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// DateLayout is how the first-publication date is rendered in descriptions.
const DateLayout = "02.01.2006"

var strict = bluemonday.StrictPolicy()

// Enrich strips markup from raw and appends the page count, first publication
// date and translator as separate paragraphs, in that order, for the ones present.
func Enrich(raw string, pages *int, published *time.Time, translator string) string {
	var b strings.Builder
	b.WriteString(StripMarkup(raw))

	if pages != nil {
		fmt.Fprintf(&b, "\n\nKsiążka ma %d stron.", *pages)
	}
	if published != nil {
		fmt.Fprintf(&b, "\n\nData pierwszego wydania: %s", published.Format(DateLayout))
	}
	if translator != "" {
		fmt.Fprintf(&b, "\n\nTłumacz: %s", translator)
	}

	return b.String()
}

// StripMarkup removes every HTML tag and decodes entities.
func StripMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(raw)))
}
