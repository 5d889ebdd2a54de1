package catalog

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// SearchURL builds the catalog search URL for a normalized query.
func (c *Client) SearchURL(q models.NormalizedQuery) string {
	searchURL := c.BaseURL + "/szukaj/ksiazki?phrase=" + url.QueryEscape(q.Title)
	if q.Author != "" {
		searchURL += "&author=" + url.QueryEscape(q.Author)
	}
	return searchURL
}

// Search fetches the catalog search page for q and returns the candidates on it.
// Failures are logged and reported as no candidates.
func (c *Client) Search(ctx context.Context, q models.NormalizedQuery) []models.CandidateStub {
	if q.Title == "" {
		slog.Info("Skipping search for empty title", "author", q.Author)
		return nil
	}

	searchURL := c.SearchURL(q)
	doc, err := c.fetchDocument(ctx, searchURL)
	if err != nil {
		slog.Error("Search request failed", "url", searchURL, "err", err)
		return nil
	}

	stubs := c.parseSearchResults(doc)
	slog.Info("Search completed", "url", searchURL, "candidates", len(stubs))
	return stubs
}

func (c *Client) parseSearchResults(doc *goquery.Document) []models.CandidateStub {
	var stubs []models.CandidateStub

	doc.Find(".authorAllBooks__single").Each(func(i int, book *goquery.Selection) {
		info := book.Find(".authorAllBooks__singleText")
		titleLink := info.Find(".authorAllBooks__singleTextTitle").First()

		title := unescapeUnicode(strings.TrimSpace(titleLink.Text()))
		href := strings.TrimSpace(titleLink.AttrOr("href", ""))

		var authors []string
		info.Find(`a[href*="/autor/"]`).Each(func(_ int, a *goquery.Selection) {
			if name := unescapeUnicode(strings.TrimSpace(a.Text())); name != "" {
				authors = append(authors, name)
			}
		})

		if title == "" || href == "" || len(authors) == 0 {
			slog.Debug("Skipping incomplete search result", "index", i, "title", title, "href", href, "authors", len(authors))
			return
		}

		bookURL, err := c.resolve(href)
		if err != nil {
			slog.Debug("Skipping search result with bad link", "href", href, "err", err)
			return
		}

		stub := models.CandidateStub{
			ID:      lastSegment(bookURL.Path),
			Title:   title,
			Authors: authors,
			URL:     bookURL.String(),
			Source:  c.Source(),
		}
		if !stub.Valid() {
			slog.Debug("Skipping search result without id", "url", stub.URL)
			return
		}
		stubs = append(stubs, stub)
	})

	return stubs
}

func lastSegment(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	return path.Base(p)
}
