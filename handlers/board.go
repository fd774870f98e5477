package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"watchboard/models"
	"watchboard/services/board"
	"watchboard/services/watchlist"
)

type boardService interface {
	Board() board.Board
	View() board.Board
	Item(id string) (models.WatchItem, error)
	AddManual(entry models.ManualEntry) (models.WatchItem, error)
	AddFromResult(resultID string) (models.WatchItem, error)
	Update(updated models.WatchItem) (models.WatchItem, error)
	Delete(id string) error
	Move(active, over string) board.Board
	Filters() board.Filters
	SetFilters(f board.Filters) (board.Filters, error)
	Preferences() watchlist.Preferences
	SetPreferences(p watchlist.Preferences) watchlist.Preferences
}

var _ boardService = (*watchlist.Service)(nil)

// BoardHandler serves the board, its items and the view settings.
type BoardHandler struct {
	Service boardService
}

func NewBoardHandler(s boardService) *BoardHandler {
	return &BoardHandler{Service: s}
}

// Board returns every category unfiltered.
func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Board())
}

type viewResponse struct {
	Board       board.Board           `json:"board"`
	Filters     board.Filters         `json:"filters"`
	Preferences watchlist.Preferences `json:"preferences"`
	Highlighted []string              `json:"highlighted"`
}

// View returns the filtered board together with the settings that shaped it.
// When top-rated highlighting is on, the ids of highlighted items are listed.
func (h *BoardHandler) View(w http.ResponseWriter, r *http.Request) {
	prefs := h.Service.Preferences()
	view := h.Service.View()

	highlighted := []string{}
	if prefs.HighlightTopRated {
		for _, c := range models.Categories {
			for _, item := range view[c] {
				if item.IsTopRated() {
					highlighted = append(highlighted, item.ID)
				}
			}
		}
	}

	writeJSON(w, http.StatusOK, viewResponse{
		Board:       view,
		Filters:     h.Service.Filters(),
		Preferences: prefs,
		Highlighted: highlighted,
	})
}

// Item returns a single item.
func (h *BoardHandler) Item(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Item(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// AddManual creates an item from a hand-typed entry.
func (h *BoardHandler) AddManual(w http.ResponseWriter, r *http.Request) {
	var entry models.ManualEntry
	if !decodeBody(w, r, &entry) {
		return
	}
	item, err := h.Service.AddManual(entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// AddFromResult creates a planning item from one of the visible search results.
func (h *BoardHandler) AddFromResult(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ResultID string `json:"resultId"`
	}
	if !decodeBody(w, r, &request) {
		return
	}
	item, err := h.Service.AddFromResult(request.ResultID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update replaces the editable fields of an item. The body's category must be
// the one the item currently sits in.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var item models.WatchItem
	if !decodeBody(w, r, &item) {
		return
	}
	item.ID = mux.Vars(r)["id"]
	updated, err := h.Service.Update(item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an item.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move applies a completed drag gesture and returns the new board. A missing
// or null "over" is a drop outside any target.
func (h *BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	var gesture struct {
		Active string  `json:"active"`
		Over   *string `json:"over"`
	}
	if !decodeBody(w, r, &gesture) {
		return
	}
	over := ""
	if gesture.Over != nil {
		over = *gesture.Over
	}
	writeJSON(w, http.StatusOK, h.Service.Move(gesture.Active, over))
}

// Filters returns the view filters.
func (h *BoardHandler) Filters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Filters())
}

// SetFilters updates the global and per-category filters.
func (h *BoardHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var filters board.Filters
	if !decodeBody(w, r, &filters) {
		return
	}
	updated, err := h.Service.SetFilters(filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Preferences returns the display toggles.
func (h *BoardHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Preferences())
}

// SetPreferences replaces the display toggles.
func (h *BoardHandler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs watchlist.Preferences
	if !decodeBody(w, r, &prefs) {
		return
	}
	writeJSON(w, http.StatusOK, h.Service.SetPreferences(prefs))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, watchlist.ErrItemNotFound), errors.Is(err, watchlist.ErrResultNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, watchlist.ErrEmptyTitle),
		errors.Is(err, watchlist.ErrInvalidCategory),
		errors.Is(err, watchlist.ErrInvalidFilter),
		errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrInvalidMediaType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[http] unexpected error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
