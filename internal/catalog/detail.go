package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dark1alex/lubimyczytac-abs/internal/description"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// FetchMetadata fetches the detail page of stub and extracts whatever it can.
// If the page cannot be fetched the returned record carries only the stub.
func (c *Client) FetchMetadata(ctx context.Context, stub models.CandidateStub) models.MetadataRecord {
	doc, err := c.fetchDocument(ctx, stub.URL)
	if err != nil {
		slog.Warn("Detail fetch failed, returning search data only", "id", stub.ID, "url", stub.URL, "err", err)
		return models.RecordFromStub(stub)
	}

	record := parseDetail(doc, stub)
	slog.Debug("Extracted book details", "id", stub.ID, "title", record.Title, "series", record.Series, "isbn", record.Identifiers.ISBN)
	return record
}

// parseDetail extracts a metadata record from a parsed detail page.
// Every field is optional; a missing element leaves its field empty.
func parseDetail(doc *goquery.Document, stub models.CandidateStub) models.MetadataRecord {
	record := models.RecordFromStub(stub)

	record.Cover = metaContent(doc, "og:image")
	record.Publisher = linkText(definition(doc, `dt:contains("Wydawnictwo:")`))

	for _, lang := range splitList(definition(doc, `dt:contains("Język:")`).Text()) {
		record.Languages = append(record.Languages, mapLanguage(lang))
	}

	record.Series, record.SeriesIndex = parseSeries(
		doc.Find(`span.d-none.d-sm-block.mt-1:contains("Cykl:") a`).First().Text(),
	)
	record.Genres = splitList(doc.Find(".book__category.d-sm-block.d-none").First().Text())
	record.Tags = tags(doc)
	record.Rating = parseRating(metaContent(doc, "books:rating:value"))

	isbn := metaContent(doc, "books:isbn")
	record.Identifiers = models.Identifiers{ISBN: isbn, ProviderID: stub.ID}

	published, err := parseDate(definition(doc, `dt[title*="Data pierwszego wydania"]`).Text())
	if err != nil {
		slog.Warn("Unparseable publication date", "id", stub.ID, "err", err)
	}
	record.PublishedDate = published

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		pages, err := parsePages(s.Text())
		if err != nil {
			slog.Warn("Malformed JSON-LD on detail page", "id", stub.ID, "err", err)
			return true
		}
		record.Pages = pages
		return pages == nil
	})

	record.Translator = linkText(definition(doc, `dt:contains("Tłumacz:")`))
	record.Description = description.Enrich(rawDescription(doc), record.Pages, record.PublishedDate, record.Translator)

	return record
}

// definition returns the <dd> that follows the first <dt> matching selector.
func definition(doc *goquery.Document, selector string) *goquery.Selection {
	return doc.Find(selector).First().NextFiltered("dd")
}

func metaContent(doc *goquery.Document, property string) string {
	return strings.TrimSpace(doc.Find(`meta[property="` + property + `"]`).First().AttrOr("content", ""))
}

// linkText joins the texts of the links inside sel.
func linkText(sel *goquery.Selection) string {
	var names []string
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			names = append(names, name)
		}
	})
	return strings.Join(names, ", ")
}

func tags(doc *goquery.Document) []string {
	var out []string
	seen := make(map[string]bool)
	doc.Find(`a[href*="/ksiazki/t/"]`).Each(func(_ int, a *goquery.Selection) {
		tag := strings.TrimSpace(a.Text())
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	})
	return out
}

func rawDescription(doc *goquery.Document) string {
	if content := doc.Find(".collapse-content").First(); content.Length() > 0 {
		if html, err := content.Html(); err == nil && strings.TrimSpace(html) != "" {
			return html
		}
	}
	return metaContent(doc, "og:description")
}
