package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"watchboard/models"
)

// resultCache keeps normalized provider responses for a short while and collapses
// concurrent lookups of the same key into one upstream request.
type resultCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	group   singleflight.Group
	now     func() time.Time
}

type cacheEntry struct {
	results   []models.SearchResult
	fetchedAt time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached results for key or calls fetch to fill the entry.
// Failed fetches are not cached. The shared fetch is detached from the
// cancellation of whichever caller started it; each caller stops waiting when
// its own ctx is done.
func (c *resultCache) get(ctx context.Context, key string, fetch func(context.Context) ([]models.SearchResult, error)) ([]models.SearchResult, error) {
	if c.ttl <= 0 {
		return fetch(ctx)
	}

	c.mu.RLock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.mu.RUnlock()
		return entry.results, nil
	}
	c.mu.RUnlock()

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		results, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.evictExpiredLocked()
		c.entries[key] = &cacheEntry{results: results, fetchedAt: c.now()}
		c.mu.Unlock()
		return results, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.SearchResult), nil
	}
}

// evictExpiredLocked drops expired entries. c.mu must be held for writing.
func (c *resultCache) evictExpiredLocked() {
	for key, entry := range c.entries {
		if c.now().Sub(entry.fetchedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
}
