// Package search merges the answers of several catalog providers into one ranked,
// deduplicated result list.
package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sourcegraph/conc"

	"watchboard/models"
)

const (
	// MinQueryLength is the shortest trimmed query that reaches the providers.
	MinQueryLength = 2
	// ProviderLimit caps the raw results taken from each provider.
	ProviderLimit = 8
	// ResultLimit caps the merged list.
	ResultLimit = 12
)

//go:generate mockgen -source=aggregator.go -destination=mocks/mock_provider.go -package=mocks

// Provider is implemented by each external catalog. Implementations normalize
// their own response format into SearchResult.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// Aggregator queries every provider concurrently and merges what comes back.
type Aggregator struct {
	providers []Provider
}

// NewAggregator creates an Aggregator. Provider order is rank order: earlier
// providers win ties and appear first.
func NewAggregator(providers ...Provider) *Aggregator {
	return &Aggregator{providers: providers}
}

// outcome is what one provider branch settled with.
type outcome struct {
	results []models.SearchResult
	err     error
}

// Search returns the merged results for query. It never fails: a provider that
// errors or panics contributes nothing and the others are still used. Queries
// shorter than MinQueryLength return an empty list without contacting anyone.
func (a *Aggregator) Search(ctx context.Context, query string) []models.SearchResult {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < MinQueryLength {
		return []models.SearchResult{}
	}

	outcomes := make([]outcome, len(a.providers))
	var wg conc.WaitGroup
	for i, p := range a.providers {
		i, p := i, p
		wg.Go(func() {
			outcomes[i] = fetch(ctx, p, trimmed)
		})
	}
	wg.Wait()

	batches := make([][]models.SearchResult, 0, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			log.Printf("[search] provider %s failed for %q: %v", a.providers[i].Name(), trimmed, o.err)
			continue
		}
		batches = append(batches, o.results)
	}

	merged := Merge(batches...)
	log.Printf("[search] %q -> %d results from %d/%d providers", trimmed, len(merged), len(batches), len(a.providers))
	return merged
}

// fetch runs one provider and turns a panic into an error so a single branch can
// never take the others down with it.
func fetch(ctx context.Context, p Provider, query string) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = outcome{err: fmt.Errorf("provider panicked: %v", r)}
		}
	}()
	results, err := p.Search(ctx, query, ProviderLimit)
	if err != nil {
		return outcome{err: err}
	}
	if len(results) > ProviderLimit {
		results = results[:ProviderLimit]
	}
	return outcome{results: results}
}

// Merge concatenates batches in order, keeps the first result for each
// (title, type) pair and caps the list at ResultLimit.
func Merge(batches ...[]models.SearchResult) []models.SearchResult {
	seen := make(map[string]struct{})
	merged := make([]models.SearchResult, 0, ResultLimit)
	for _, batch := range batches {
		for _, r := range batch {
			key := r.DedupKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, r)
			if len(merged) == ResultLimit {
				return merged
			}
		}
	}
	return merged
}
