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
	// SourceTVMaze tags results that came from the TVmaze show search.
	SourceTVMaze  = "tvmaze"
	tvmazeBaseURL = "https://api.tvmaze.com"
)

// TVMazeClient searches TVmaze for shows.
type TVMazeClient struct {
	baseURL string
	opts    Options
	cache   *resultCache
}

type tvmazeHit struct {
	Show tvmazeShow `json:"show"`
}

type tvmazeShow struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Image     *tvmazeImage `json:"image"`
	Premiered *string      `json:"premiered"`
}

type tvmazeImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// NewTVMazeClient builds a show search client. An empty base URL selects the
// public API.
func NewTVMazeClient(opts Options) *TVMazeClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = tvmazeBaseURL
	}
	opts.HTTPClient = opts.httpClient()
	return &TVMazeClient{baseURL: base, opts: opts, cache: newResultCache(opts.CacheTTL)}
}

// Name identifies the provider in logs.
func (c *TVMazeClient) Name() string { return SourceTVMaze }

// Search returns at most limit shows matching query. TVmaze has no limit
// parameter, so the response is truncated locally.
func (c *TVMazeClient) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	endpoint := fmt.Sprintf("%s/search/shows?q=%s", c.baseURL, url.QueryEscape(query))
	key := endpoint + "#" + strconv.Itoa(limit)

	return c.cache.get(ctx, key, func(ctx context.Context) ([]models.SearchResult, error) {
		var hits []tvmazeHit
		if err := getJSON(ctx, c.opts.HTTPClient, SourceTVMaze, endpoint, &hits); err != nil {
			return nil, err
		}
		results := normalizeTVMaze(hits, limit)
		log.Printf("[catalog] tvmaze returned %d results for %q", len(results), query)
		return results, nil
	})
}

// normalizeTVMaze maps raw TVmaze hits onto search results, keeping at most
// limit of them. The original image is preferred over the medium one.
func normalizeTVMaze(hits []tvmazeHit, limit int) []models.SearchResult {
	if limit >= 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	results := make([]models.SearchResult, 0, len(hits))
	for _, h := range hits {
		show := h.Show
		poster := ""
		if show.Image != nil {
			poster = show.Image.Original
			if poster == "" {
				poster = show.Image.Medium
			}
		}
		year := ""
		if show.Premiered != nil {
			year = yearFrom(*show.Premiered)
		}
		results = append(results, models.SearchResult{
			ID:     SourceTVMaze + "-" + strconv.FormatInt(show.ID, 10),
			Source: SourceTVMaze,
			Title:  show.Name,
			Year:   year,
			Poster: poster,
			Type:   models.MediaTypeTV,
		})
	}
	return results
}
