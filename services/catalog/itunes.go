package catalog

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"watchboard/models"
)

const (
	// SourceITunes tags results that came from the iTunes Search API.
	SourceITunes   = "itunes"
	itunesBaseURL  = "https://itunes.apple.com"
	itunesThumb    = "100x100"
	itunesLargeArt = "400x600"
)

// ITunesClient searches the iTunes Search API for movies.
type ITunesClient struct {
	baseURL string
	opts    Options
	cache   *resultCache
}

type itunesResponse struct {
	Results []itunesEntry `json:"results"`
}

type itunesEntry struct {
	TrackID       int64  `json:"trackId"`
	TrackName     string `json:"trackName"`
	ArtworkURL100 string `json:"artworkUrl100"`
	ReleaseDate   string `json:"releaseDate"`
}

// NewITunesClient builds a movie search client. An empty base URL selects the
// public API.
func NewITunesClient(opts Options) *ITunesClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = itunesBaseURL
	}
	opts.HTTPClient = opts.httpClient()
	return &ITunesClient{baseURL: base, opts: opts, cache: newResultCache(opts.CacheTTL)}
}

// Name identifies the provider in logs.
func (c *ITunesClient) Name() string { return SourceITunes }

// Search returns at most limit movies matching query.
func (c *ITunesClient) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	endpoint := fmt.Sprintf("%s/search?term=%s&media=movie&limit=%d", c.baseURL, url.QueryEscape(query), limit)

	return c.cache.get(ctx, endpoint, func(ctx context.Context) ([]models.SearchResult, error) {
		var resp itunesResponse
		if err := getJSON(ctx, c.opts.HTTPClient, SourceITunes, endpoint, &resp); err != nil {
			return nil, err
		}
		results := normalizeITunes(resp.Results, limit)
		log.Printf("[catalog] itunes returned %d results for %q", len(results), query)
		return results, nil
	})
}

// normalizeITunes maps raw iTunes entries onto search results, keeping at most
// limit of them. The 100px artwork is swapped for the larger poster rendition.
func normalizeITunes(entries []itunesEntry, limit int) []models.SearchResult {
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	results := make([]models.SearchResult, 0, len(entries))
	for _, e := range entries {
		poster := ""
		if e.ArtworkURL100 != "" {
			poster = strings.Replace(e.ArtworkURL100, itunesThumb, itunesLargeArt, 1)
		}
		results = append(results, models.SearchResult{
			ID:     SourceITunes + "-" + strconv.FormatInt(e.TrackID, 10),
			Source: SourceITunes,
			Title:  e.TrackName,
			Year:   yearFrom(e.ReleaseDate),
			Poster: poster,
			Type:   models.MediaTypeMovie,
		})
	}
	return results
}
