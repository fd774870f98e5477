package search

import (
	"context"
	"sync"

	"watchboard/models"
)

// Searcher is the query side of an Aggregator.
type Searcher interface {
	Search(ctx context.Context, query string) []models.SearchResult
}

// Latest keeps the visible result list for a sequence of queries. Only the most
// recently issued query may publish its results: a slower, older query that
// settles afterwards is discarded, and issuing a query cancels the context of the
// one still in flight.
type Latest struct {
	searcher Searcher

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	query   string
	results []models.SearchResult
}

// NewLatest wraps searcher.
func NewLatest(searcher Searcher) *Latest {
	return &Latest{searcher: searcher, results: []models.SearchResult{}}
}

// Query runs query and returns its results along with whether they were
// published as the visible list. Stale queries still return their own results.
func (l *Latest) Query(ctx context.Context, query string) ([]models.SearchResult, bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	ticket := l.seq
	l.cancel = cancel
	l.mu.Unlock()

	results := l.searcher.Search(ctx, query)

	l.mu.Lock()
	defer l.mu.Unlock()
	if ticket != l.seq {
		return results, false
	}
	l.cancel = nil
	l.query = query
	l.results = results
	return results, true
}

// Current returns the query and results that are currently visible.
func (l *Latest) Current() (string, []models.SearchResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query, l.results
}

// Take returns the visible result with id and clears the list, mirroring a user
// picking one entry from the dropdown.
func (l *Latest) Take(id string) (models.SearchResult, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.results {
		if r.ID == id {
			l.query = ""
			l.results = []models.SearchResult{}
			return r, true
		}
	}
	return models.SearchResult{}, false
}

// Clear empties the visible list and cancels any query in flight.
func (l *Latest) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
	l.query = ""
	l.results = []models.SearchResult{}
}
