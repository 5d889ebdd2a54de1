package models

import "time"

// RawQuery is the unprocessed lookup request as received from a caller.
type RawQuery struct {
	Text         string `json:"query"`
	HintedAuthor string `json:"author,omitempty"`
}

// NormalizedQuery is the cleaned (title, author) pair used to search the catalog.
// Author may be empty.
type NormalizedQuery struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// SourceInfo identifies the catalog a record came from
type SourceInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// CandidateStub is a search-result entry before its detail page is fetched
type CandidateStub struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Authors []string   `json:"authors"`
	URL     string     `json:"url"`
	Source  SourceInfo `json:"source"`
}

// Valid reports whether the stub carries enough to be worth a detail fetch.
func (s CandidateStub) Valid() bool {
	return s.ID != "" && len(s.Authors) > 0
}

// Identifiers holds the external identifiers known for a record
type Identifiers struct {
	ISBN       string `json:"isbn,omitempty"`
	ProviderID string `json:"lubimyczytac,omitempty"`
}

// MetadataRecord is a stub enriched with everything extracted from its detail page.
// Optional fields are nil or empty when the page did not carry them.
type MetadataRecord struct {
	CandidateStub

	Cover         string      `json:"cover,omitempty"`
	Publisher     string      `json:"publisher,omitempty"`
	Languages     []string    `json:"languages,omitempty"`
	Description   string      `json:"description,omitempty"`
	PublishedDate *time.Time  `json:"publishedDate,omitempty"`
	Rating        *float64    `json:"rating,omitempty"`
	Series        string      `json:"series,omitempty"`
	SeriesIndex   *int        `json:"seriesIndex,omitempty"`
	Genres        []string    `json:"genres,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Pages         *int        `json:"pages,omitempty"`
	Translator    string      `json:"translator,omitempty"`
	Identifiers   Identifiers `json:"identifiers"`
}

// RecordFromStub returns a record that carries only the stub fields.
func RecordFromStub(stub CandidateStub) MetadataRecord {
	return MetadataRecord{
		CandidateStub: stub,
		Identifiers:   Identifiers{ProviderID: stub.ID},
	}
}
