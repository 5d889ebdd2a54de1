package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/catalog"
	"github.com/dark1alex/lubimyczytac-abs/internal/lookup"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
	"github.com/dark1alex/lubimyczytac-abs/internal/throttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	calls   []models.RawQuery
	records []models.MetadataRecord
	panics  bool
}

func (f *fakeSearcher) Search(_ context.Context, raw models.RawQuery) []models.MetadataRecord {
	f.calls = append(f.calls, raw)
	if f.panics {
		panic("scraper exploded")
	}
	return f.records
}

func serve(t *testing.T, searcher Searcher, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter(New(searcher)).ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSearchRequiresAuthorization(t *testing.T) {
	searcher := &fakeSearcher{}

	for _, target := range []string{"/search?query=Lalka", "/search"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := serve(t, searcher, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Equal(t, "Unauthorized", decodeBody(t, rec)["error"])
	}
	assert.Empty(t, searcher.calls)
}

func TestSearchRequiresQuery(t *testing.T) {
	searcher := &fakeSearcher{}

	for _, target := range []string{"/search", "/search?query=", "/search?query=%20%20&author=Prus"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "anything")
		rec := serve(t, searcher, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "Query parameter is required", decodeBody(t, rec)["error"])
	}
	assert.Empty(t, searcher.calls)
}

func TestSearchReturnsMatches(t *testing.T) {
	searcher := &fakeSearcher{
		records: []models.MetadataRecord{
			models.RecordFromStub(models.CandidateStub{ID: "lalka", Title: "Lalka", Authors: []string{"Bolesław Prus"}}),
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/search?query=Prus+-+Lalka&author=B.+Prus", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := serve(t, searcher, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"matches":[{"title":"Lalka","author":"Bolesław Prus"}]}`, rec.Body.String())
	require.Len(t, searcher.calls, 1)
	assert.Equal(t, models.RawQuery{Text: "Prus - Lalka", HintedAuthor: "B. Prus"}, searcher.calls[0])
}

func TestSearchEmptyResult(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/search?query=nic", nil)
	req.Header.Set("Authorization", "x")
	rec := serve(t, &fakeSearcher{}, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"matches":[]}`, rec.Body.String())
}

func TestSearchPanicBecomes500(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/search?query=Lalka", nil)
	req.Header.Set("Authorization", "x")
	rec := serve(t, &fakeSearcher{panics: true}, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])
}

func TestPreflightSkipsAuthorization(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "http://abs.local")
	rec := serve(t, &fakeSearcher{}, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRequestIDPropagation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := serve(t, &fakeSearcher{}, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	rec = serve(t, &fakeSearcher{}, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)
}

func TestSearchEmptyCatalogPage(t *testing.T) {
	var paths []string
	catalogServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div class="search-results"><p>Brak wyników</p></div></body></html>`))
	}))
	defer catalogServer.Close()

	th := throttle.New(10*time.Second, throttle.WithSleep(func(context.Context, time.Duration) error { return nil }))
	service := lookup.NewService(catalog.NewClient(catalogServer.URL, th))

	req := httptest.NewRequest(http.MethodGet, "/search?query=Autor+-+Nieistniejaca+ksiazka", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := serve(t, service, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"matches":[]}`, rec.Body.String())
	assert.Equal(t, []string{"/szukaj/ksiazki"}, paths)
}
