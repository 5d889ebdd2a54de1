// Package lookup resolves a raw audiobook query into catalog metadata records.
package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/models"
	"github.com/dark1alex/lubimyczytac-abs/internal/normalize"
	"golang.org/x/sync/errgroup"
)

// Catalog is the part of the catalog client the service depends on.
type Catalog interface {
	Search(ctx context.Context, q models.NormalizedQuery) []models.CandidateStub
	FetchMetadata(ctx context.Context, stub models.CandidateStub) models.MetadataRecord
}

type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Query normalizes raw. The hinted author is used only when the raw text
// does not carry one itself.
func Query(raw models.RawQuery) models.NormalizedQuery {
	q := normalize.Normalize(raw.Text)
	if q.Author == "" {
		q.Author = raw.HintedAuthor
	}
	return q
}

// Search runs the whole pipeline: normalize, search, then fetch every
// candidate's detail page concurrently. Records come back in search order.
func (s *Service) Search(ctx context.Context, raw models.RawQuery) []models.MetadataRecord {
	start := time.Now()
	q := Query(raw)
	slog.Info("Resolving query", "raw", raw.Text, "hinted_author", raw.HintedAuthor, "title", q.Title, "author", q.Author)

	stubs := s.catalog.Search(ctx, q)
	if len(stubs) == 0 {
		slog.Info("No candidates found", "title", q.Title, "author", q.Author)
		return []models.MetadataRecord{}
	}

	records := make([]models.MetadataRecord, len(stubs))
	var g errgroup.Group
	for i, stub := range stubs {
		g.Go(func() error {
			records[i] = s.catalog.FetchMetadata(ctx, stub)
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("Query resolved", "title", q.Title, "matches", len(records), "elapsed", time.Since(start))
	return records
}
