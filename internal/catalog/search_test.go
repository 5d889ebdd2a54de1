package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/models"
	"github.com/dark1alex/lubimyczytac-abs/internal/throttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<div class="authorAllBooks__single">
  <div class="authorAllBooks__singleText">
    <a class="authorAllBooks__singleTextTitle" href="/ksiazka/4805/krew-elfow">Krew elfów</a>
    <a href="/autor/4/andrzej-sapkowski">Andrzej Sapkowski</a>
  </div>
</div>
<div class="authorAllBooks__single">
  <div class="authorAllBooks__singleText">
    <a class="authorAllBooks__singleTextTitle" href="/ksiazka/1/bez-autora">Bez autora</a>
  </div>
</div>
<div class="authorAllBooks__single">
  <div class="authorAllBooks__singleText">
    <a class="authorAllBooks__singleTextTitle" href="/ksiazka/77/piata">Piąta pora roku</a>
    <a href="/autor/9/anna">Anna</a>
    <a href="/autor/10/piotr">Piotr</a>
  </div>
</div>
<div class="authorAllBooks__single">
  <div class="authorAllBooks__singleText">
    <a class="authorAllBooks__singleTextTitle" href="/ksiazka/">Bez identyfikatora</a>
    <a href="/autor/9/anna">Anna</a>
  </div>
</div>
</body></html>`

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, throttle.New(time.Nanosecond))
}

func TestSearch(t *testing.T) {
	var gotPhrase, gotAuthor string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/szukaj/ksiazki", r.URL.Path)
		gotPhrase = r.URL.Query().Get("phrase")
		gotAuthor = r.URL.Query().Get("author")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, searchPage)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stubs := client.Search(context.Background(), models.NormalizedQuery{Title: "Krew Elfow", Author: "J Kowalski"})

	assert.Equal(t, "Krew Elfow", gotPhrase)
	assert.Equal(t, "J Kowalski", gotAuthor)
	require.Len(t, stubs, 2)

	assert.Equal(t, models.CandidateStub{
		ID:      "krew-elfow",
		Title:   "Krew elfów",
		Authors: []string{"Andrzej Sapkowski"},
		URL:     server.URL + "/ksiazka/4805/krew-elfow",
		Source: models.SourceInfo{
			ID:          "lubimyczytac",
			Description: "Lubimy Czytać",
			Link:        server.URL,
		},
	}, stubs[0])

	assert.Equal(t, "piata", stubs[1].ID)
	assert.Equal(t, "Piąta pora roku", stubs[1].Title)
	assert.Equal(t, []string{"Anna", "Piotr"}, stubs[1].Authors)
}

func TestSearchOmitsEmptyAuthor(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	stubs := newTestClient(server.URL).Search(context.Background(), models.NormalizedQuery{Title: "Lalka"})
	assert.Empty(t, stubs)
	assert.Equal(t, "phrase=Lalka", rawQuery)
}

func TestSearchEmptyTitleSkipsRequest(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	stubs := newTestClient(server.URL).Search(context.Background(), models.NormalizedQuery{Author: "Anna"})
	assert.Empty(t, stubs)
	assert.Zero(t, requests.Load())
}

func TestSearchFailureYieldsNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	stubs := newTestClient(server.URL).Search(context.Background(), models.NormalizedQuery{Title: "Lalka"})
	assert.Empty(t, stubs)
}

func TestSearchUnreachableCatalog(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	stubs := newTestClient(baseURL).Search(context.Background(), models.NormalizedQuery{Title: "Lalka"})
	assert.Empty(t, stubs)
}

func TestSearchDecodesLegacyCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-2")
		// "Wiedźmin" with ź encoded as 0xBC in ISO-8859-2
		fmt.Fprint(w, `<div class="authorAllBooks__single"><div class="authorAllBooks__singleText">`+
			`<a class="authorAllBooks__singleTextTitle" href="/ksiazka/5/wiedzmin">Wied`+"\xbc"+`min</a>`+
			`<a href="/autor/4/sapkowski">Sapkowski</a></div></div>`)
	}))
	defer server.Close()

	stubs := newTestClient(server.URL).Search(context.Background(), models.NormalizedQuery{Title: "Wiedzmin"})
	require.Len(t, stubs, 1)
	assert.Equal(t, "Wiedźmin", stubs[0].Title)
}

func TestSearchURL(t *testing.T) {
	client := NewClient("https://lubimyczytac.pl/", nil)
	assert.Equal(t,
		"https://lubimyczytac.pl/szukaj/ksiazki?phrase=Krew+Elfow&author=J+Kowalski",
		client.SearchURL(models.NormalizedQuery{Title: "Krew Elfow", Author: "J Kowalski"}))
	assert.Equal(t,
		"https://lubimyczytac.pl/szukaj/ksiazki?phrase=Pi%C4%85ta+%26+sz%C3%B3sta",
		client.SearchURL(models.NormalizedQuery{Title: "Piąta & szósta"}))
}

func TestRequestsShareThrottle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchPage)
	}))
	defer server.Close()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var delays []time.Duration
	th := throttle.New(10*time.Second,
		throttle.WithClock(func() time.Time { return t0 }),
		throttle.WithSleep(func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}))
	client := NewClient(server.URL, th)

	stubs := client.Search(context.Background(), models.NormalizedQuery{Title: "Krew Elfow"})
	require.NotEmpty(t, stubs)
	client.FetchMetadata(context.Background(), stubs[0])

	require.Len(t, delays, 1)
	assert.GreaterOrEqual(t, delays[0], 10*time.Second)
	assert.Less(t, delays[0], 10*time.Second+time.Microsecond)
}
