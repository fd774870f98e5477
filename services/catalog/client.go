// Package catalog talks to the external movie and TV catalogs and maps their
// responses onto models.SearchResult.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single provider request.
	DefaultTimeout = 10 * time.Second
	// DefaultCacheTTL matches how long a provider answer is considered fresh.
	DefaultCacheTTL = 60 * time.Second
)

// Options configures a provider client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	CacheTTL   time.Duration
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON issues a GET against url and decodes a 200 response into dst.
func getJSON(ctx context.Context, client *http.Client, source, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[catalog] %s http request error: %v", source, err)
		return fmt.Errorf("%s request: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[catalog] %s unexpected status %d", source, resp.StatusCode)
		return &StatusError{Source: source, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", source, err)
	}
	return nil
}

// StatusError reports a non-200 answer from a provider.
type StatusError struct {
	Source     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
}

// yearFrom keeps the first four characters of a release or premiere date.
func yearFrom(date string) string {
	if len(date) > 4 {
		return date[:4]
	}
	return date
}
