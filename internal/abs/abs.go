// Package abs maps metadata records onto the Audiobookshelf custom
// metadata provider response.
package abs

import (
	"strconv"
	"strings"

	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// Response is the body returned from the search endpoint
type Response struct {
	Matches []BookMetadata `json:"matches" yaml:"matches"`
}

// Series is one series entry of a book
type Series struct {
	Series   string `json:"series" yaml:"series"`
	Sequence string `json:"sequence,omitempty" yaml:"sequence,omitempty"`
}

// BookMetadata is a single match in Audiobookshelf's provider schema.
// Everything except the title is optional.
type BookMetadata struct {
	Title         string   `json:"title" yaml:"title"`
	Subtitle      string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Author        string   `json:"author,omitempty" yaml:"author,omitempty"`
	Narrator      string   `json:"narrator,omitempty" yaml:"narrator,omitempty"`
	Publisher     string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedYear string   `json:"publishedYear,omitempty" yaml:"publishedYear,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Cover         string   `json:"cover,omitempty" yaml:"cover,omitempty"`
	ISBN          string   `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	ASIN          string   `json:"asin,omitempty" yaml:"asin,omitempty"`
	Genres        []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Series        []Series `json:"series,omitempty" yaml:"series,omitempty"`
	Language      string   `json:"language,omitempty" yaml:"language,omitempty"`
	Duration      *int     `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// FromRecord converts a metadata record to a provider match.
func FromRecord(r models.MetadataRecord) BookMetadata {
	m := BookMetadata{
		Title:       r.Title,
		Author:      strings.Join(r.Authors, ", "),
		Publisher:   r.Publisher,
		Description: r.Description,
		Cover:       r.Cover,
		ISBN:        r.Identifiers.ISBN,
		Genres:      r.Genres,
		Tags:        r.Tags,
	}

	if r.PublishedDate != nil {
		m.PublishedYear = strconv.Itoa(r.PublishedDate.Year())
	}
	if r.Series != "" {
		s := Series{Series: r.Series}
		if r.SeriesIndex != nil {
			s.Sequence = strconv.Itoa(*r.SeriesIndex)
		}
		m.Series = []Series{s}
	}
	if len(r.Languages) > 0 {
		m.Language = r.Languages[0]
	}

	return m
}

// NewResponse wraps records in the provider response. A nil or empty slice
// produces an empty, non-null matches array.
func NewResponse(records []models.MetadataRecord) Response {
	matches := make([]BookMetadata, 0, len(records))
	for _, r := range records {
		matches = append(matches, FromRecord(r))
	}
	return Response{Matches: matches}
}
