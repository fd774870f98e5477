package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchboard/models"
)

const itunesFixture = `{
  "resultCount": 3,
  "results": [
    {"trackId": 1001, "trackName": "Dune", "artworkUrl100": "https://is1.mzstatic.com/image/thumb/100x100bb.jpg", "releaseDate": "2021-10-22T07:00:00Z"},
    {"trackId": 1002, "trackName": "Arrival", "releaseDate": "2016"},
    {"trackId": 1003, "trackName": "Blade Runner"}
  ]
}`

const tvmazeFixture = `[
  {"score": 0.9, "show": {"id": 1, "name": "Dune: Prophecy", "image": {"medium": "https://static.tvmaze.com/medium/1.jpg", "original": "https://static.tvmaze.com/original/1.jpg"}, "premiered": "2024-11-17"}},
  {"score": 0.8, "show": {"id": 2, "name": "Dune", "image": {"medium": "https://static.tvmaze.com/medium/2.jpg"}, "premiered": null}},
  {"score": 0.7, "show": {"id": 3, "name": "Frank Herbert's Dune", "image": null}}
]`

func fixtureServer(t *testing.T, path, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestITunesSearchNormalizes(t *testing.T) {
	queries := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.RawQuery
		fmt.Fprint(w, itunesFixture)
	}))
	defer srv.Close()

	client := NewITunesClient(Options{BaseURL: srv.URL})
	results, err := client.Search(context.Background(), "dune part", 8)
	require.NoError(t, err)

	query := <-queries
	assert.Contains(t, query, "term=dune+part")
	assert.Contains(t, query, "media=movie")
	assert.Contains(t, query, "limit=8")

	require.Len(t, results, 3)
	assert.Equal(t, models.SearchResult{
		ID:     "itunes-1001",
		Source: SourceITunes,
		Title:  "Dune",
		Year:   "2021",
		Poster: "https://is1.mzstatic.com/image/thumb/400x600bb.jpg",
		Type:   models.MediaTypeMovie,
	}, results[0])
	assert.Equal(t, "2016", results[1].Year)
	assert.Empty(t, results[1].Poster)
	assert.Empty(t, results[2].Year)
}

func TestITunesSearchTruncatesToLimit(t *testing.T) {
	srv := fixtureServer(t, "/search", itunesFixture, nil)
	client := NewITunesClient(Options{BaseURL: srv.URL})

	results, err := client.Search(context.Background(), "dune", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestTVMazeSearchNormalizes(t *testing.T) {
	srv := fixtureServer(t, "/search/shows", tvmazeFixture, nil)
	client := NewTVMazeClient(Options{BaseURL: srv.URL + "/"})

	results, err := client.Search(context.Background(), "dune", 8)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "tvmaze-1", results[0].ID)
	assert.Equal(t, "https://static.tvmaze.com/original/1.jpg", results[0].Poster)
	assert.Equal(t, "2024", results[0].Year)
	assert.Equal(t, models.MediaTypeTV, results[0].Type)

	assert.Equal(t, "https://static.tvmaze.com/medium/2.jpg", results[1].Poster)
	assert.Empty(t, results[1].Year)

	assert.Empty(t, results[2].Poster)
	assert.Equal(t, SourceTVMaze, results[2].Source)
}

func TestSearchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewTVMazeClient(Options{BaseURL: srv.URL}).Search(context.Background(), "dune", 8)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr), "expected StatusError, got %v", err)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, SourceTVMaze, statusErr.Source)
}

func TestSearchMalformedBody(t *testing.T) {
	srv := fixtureServer(t, "/search", "<html>", nil)

	_, err := NewITunesClient(Options{BaseURL: srv.URL}).Search(context.Background(), "dune", 8)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode itunes response"), err.Error())
}

func TestSearchCachesResponses(t *testing.T) {
	var hits atomic.Int32
	srv := fixtureServer(t, "/search/shows", tvmazeFixture, &hits)
	client := NewTVMazeClient(Options{BaseURL: srv.URL, CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := client.Search(context.Background(), "dune", 8)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, hits.Load())

	_, err := client.Search(context.Background(), "arrival", 8)
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load())
}

func TestSearchWithoutCacheAlwaysFetches(t *testing.T) {
	var hits atomic.Int32
	srv := fixtureServer(t, "/search", itunesFixture, &hits)
	client := NewITunesClient(Options{BaseURL: srv.URL})

	for i := 0; i < 2; i++ {
		_, err := client.Search(context.Background(), "dune", 8)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, hits.Load())
}

func TestCacheExpiry(t *testing.T) {
	cache := newResultCache(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	calls := 0
	fetch := func(context.Context) ([]models.SearchResult, error) {
		calls++
		return []models.SearchResult{{ID: "x"}}, nil
	}

	_, err := cache.get(context.Background(), "k", fetch)
	require.NoError(t, err)
	_, err = cache.get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, err = cache.get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	cache := newResultCache(time.Minute)
	calls := 0
	fetch := func(context.Context) ([]models.SearchResult, error) {
		calls++
		return nil, errors.New("boom")
	}

	for i := 0; i < 2; i++ {
		_, err := cache.get(context.Background(), "k", fetch)
		require.Error(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestYearFrom(t *testing.T) {
	assert.Equal(t, "1999", yearFrom("1999-03-31"))
	assert.Equal(t, "1999", yearFrom("1999"))
	assert.Equal(t, "99", yearFrom("99"))
	assert.Empty(t, yearFrom(""))
}

func TestCacheSharedFetchSurvivesCallerCancel(t *testing.T) {
	cache := newResultCache(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]models.SearchResult, error) {
		close(started)
		select {
		case <-release:
			return []models.SearchResult{{ID: "x"}}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.get(firstCtx, "k", fetch)
		firstErr <- err
	}()
	<-started

	cancelFirst()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	secondDone := make(chan []models.SearchResult, 1)
	go func() {
		results, err := cache.get(context.Background(), "k", fetch)
		assert.NoError(t, err)
		secondDone <- results
	}()
	close(release)

	results := <-secondDone
	require.Len(t, results, 1)
	assert.Equal(t, "x", results[0].ID)
}
