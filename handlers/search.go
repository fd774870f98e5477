package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"watchboard/models"
	"watchboard/services/watchlist"
)

type searchService interface {
	Search(ctx context.Context, query string) []models.SearchResult
	SearchResults() (string, []models.SearchResult)
}

var _ searchService = (*watchlist.Service)(nil)

// SearchHandler exposes the merged catalog search.
type SearchHandler struct {
	Service searchService
}

func NewSearchHandler(s searchService) *SearchHandler {
	return &SearchHandler{Service: s}
}

type searchResponse struct {
	Query   string                `json:"query,omitempty"`
	Results []models.SearchResult `json:"results"`
}

// Search runs the query in ?q= against every provider. Provider failures are
// never reported; the response is at worst an empty list.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.Service.Search(r.Context(), query)
	if results == nil {
		results = []models.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

// Current returns the visible result list of the latest query.
func (h *SearchHandler) Current(w http.ResponseWriter, r *http.Request) {
	query, results := h.Service.SearchResults()
	if results == nil {
		results = []models.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
