// Package watchlist owns the session state behind the HTTP API: the board, the
// view filters, display preferences and the visible search results.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"watchboard/models"
	"watchboard/services/board"
	"watchboard/services/search"
)

var (
	// ErrItemNotFound is returned when an id does not resolve to a board item.
	ErrItemNotFound = errors.New("watch item not found")
	// ErrResultNotFound is returned when a result id is not in the visible search results.
	ErrResultNotFound = errors.New("search result not found")
	// ErrEmptyTitle is returned for manual entries without a title.
	ErrEmptyTitle = errors.New("title is required")
	// ErrInvalidCategory is returned for category keys outside the four buckets.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidFilter is returned for filter values other than all, movie or tv.
	ErrInvalidFilter = errors.New("invalid type filter")
)

// Preferences are display toggles that do not affect board contents.
type Preferences struct {
	CompactMode       bool `json:"compactMode"`
	HighlightTopRated bool `json:"highlightTopRated"`
	SidebarCollapsed  bool `json:"sidebarCollapsed"`
}

// Service serializes operations on one session's state. Every board operation
// runs to completion before the next one starts.
type Service struct {
	mu          sync.Mutex
	board       board.Board
	filters     board.Filters
	preferences Preferences

	results *search.Latest
}

// NewService creates a session over initial, which may be nil for an empty board.
func NewService(searcher search.Searcher, initial board.Board) *Service {
	if initial == nil {
		initial = board.New()
	}
	return &Service{
		board:   board.ReplaceAll(initial.Flatten()),
		filters: board.DefaultFilters(),
		results: search.NewLatest(searcher),
	}
}

// Board returns the current board.
func (s *Service) Board() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

// View returns the board filtered by the current filters.
func (s *Service) View() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return board.Project(s.board, s.filters)
}

// Item looks up an item by id.
func (s *Service) Item(id string) (models.WatchItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.board.Find(id)
	if !ok {
		return models.WatchItem{}, ErrItemNotFound
	}
	return item, nil
}

// Search runs a catalog query and publishes the results unless a newer query
// has been issued in the meantime.
func (s *Service) Search(ctx context.Context, query string) []models.SearchResult {
	results, published := s.results.Query(ctx, query)
	if !published {
		log.Printf("[watchlist] discarded stale results for %q", query)
	}
	return results
}

// SearchResults returns the visible query and results.
func (s *Service) SearchResults() (string, []models.SearchResult) {
	return s.results.Current()
}

// AddFromResult adds the visible search result with resultID to planning and
// clears the visible results.
func (s *Service) AddFromResult(resultID string) (models.WatchItem, error) {
	result, ok := s.results.Take(resultID)
	if !ok {
		return models.WatchItem{}, fmt.Errorf("%w: %s", ErrResultNotFound, resultID)
	}
	item := board.FromResult(result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = s.board.AddItem(item, models.CategoryPlanning)
	log.Printf("[watchlist] added %q from %s", item.Title, result.ID)
	return item, nil
}

// AddManual adds a hand-typed entry at the head of its category.
func (s *Service) AddManual(entry models.ManualEntry) (models.WatchItem, error) {
	if strings.TrimSpace(entry.Title) == "" {
		return models.WatchItem{}, ErrEmptyTitle
	}
	if !entry.Category.Valid() {
		return models.WatchItem{}, fmt.Errorf("%w: %q", ErrInvalidCategory, entry.Category)
	}
	if !entry.Type.Valid() {
		return models.WatchItem{}, fmt.Errorf("%w: %q", models.ErrInvalidMediaType, entry.Type)
	}
	item := board.FromManual(entry)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = s.board.AddItem(item, entry.Category)
	return item, nil
}

// Update replaces the fields of an existing item. The item must still be in
// updated.Category; otherwise nothing changes and ErrItemNotFound is returned.
func (s *Service) Update(updated models.WatchItem) (models.WatchItem, error) {
	if err := updated.Validate(); err != nil {
		return models.WatchItem{}, err
	}
	updated.Title = strings.TrimSpace(updated.Title)
	updated.Poster = strings.TrimSpace(updated.Poster)
	updated.Year = strings.TrimSpace(updated.Year)

	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.board.IndexOf(updated.Category, updated.ID)
	if index == -1 {
		return models.WatchItem{}, ErrItemNotFound
	}
	// Provenance is fixed at creation.
	updated.SourceID = s.board[updated.Category][index].SourceID
	s.board = s.board.UpdateItem(updated)
	return updated, nil
}

// Delete removes the item with id.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.board.Find(id); !ok {
		return ErrItemNotFound
	}
	s.board = s.board.DeleteItem(id)
	return nil
}

// Move applies a drag gesture and returns the resulting board.
func (s *Service) Move(active, over string) board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = s.board.Move(active, over)
	return s.board
}

// Import replaces the board with the items in data. On error the board is left
// as it was.
func (s *Service) Import(data []byte) (board.Board, error) {
	next, err := board.Import(data)
	if err != nil {
		log.Printf("[watchlist] import rejected: %v", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = next
	log.Printf("[watchlist] imported %d items", next.Len())
	return next, nil
}

// Export returns the flattened board as JSON.
func (s *Service) Export() ([]byte, error) {
	return board.Export(s.Board())
}

// Filters returns the current view filters.
func (s *Service) Filters() board.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFilters(s.filters)
}

// SetFilters validates and stores new view filters. Categories missing from
// f keep their current filter.
func (s *Service) SetFilters(f board.Filters) (board.Filters, error) {
	if f.Global != "" && !f.Global.Valid() {
		return board.Filters{}, fmt.Errorf("%w: %q", ErrInvalidFilter, f.Global)
	}
	for c, v := range f.Categories {
		if !c.Valid() {
			return board.Filters{}, fmt.Errorf("%w: %q", ErrInvalidCategory, c)
		}
		if !v.Valid() {
			return board.Filters{}, fmt.Errorf("%w: %q", ErrInvalidFilter, v)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := copyFilters(s.filters)
	if f.Global != "" {
		next.Global = f.Global
	}
	for c, v := range f.Categories {
		next.Categories[c] = v
	}
	s.filters = next
	return copyFilters(next), nil
}

// Preferences returns the display preferences.
func (s *Service) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences
}

// SetPreferences stores the display preferences.
func (s *Service) SetPreferences(p Preferences) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = p
	return p
}

func copyFilters(f board.Filters) board.Filters {
	out := board.Filters{Global: f.Global, Categories: make(map[models.Category]models.TypeFilter, len(f.Categories))}
	for c, v := range f.Categories {
		out.Categories[c] = v
	}
	return out
}
