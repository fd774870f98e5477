package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes groups the handlers mounted under /api.
type Routes struct {
	Search    *SearchHandler
	Board     *BoardHandler
	Transfer  *TransferHandler
	ClientLog *ClientLogHandler
}

// Register mounts every API route on r. Nil handlers are skipped.
func (rt Routes) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	if h := rt.Search; h != nil {
		api.HandleFunc("/search", h.Search).Methods(http.MethodGet)
		api.HandleFunc("/search/results", h.Current).Methods(http.MethodGet)
	}

	if h := rt.Board; h != nil {
		api.HandleFunc("/board", h.Board).Methods(http.MethodGet)
		api.HandleFunc("/board/move", h.Move).Methods(http.MethodPost)
		api.HandleFunc("/view", h.View).Methods(http.MethodGet)
		api.HandleFunc("/items", h.AddManual).Methods(http.MethodPost)
		api.HandleFunc("/items/from-result", h.AddFromResult).Methods(http.MethodPost)
		api.HandleFunc("/items/{id}", h.Item).Methods(http.MethodGet)
		api.HandleFunc("/items/{id}", h.Update).Methods(http.MethodPut)
		api.HandleFunc("/items/{id}", h.Delete).Methods(http.MethodDelete)
		api.HandleFunc("/filters", h.Filters).Methods(http.MethodGet)
		api.HandleFunc("/filters", h.SetFilters).Methods(http.MethodPut)
		api.HandleFunc("/preferences", h.Preferences).Methods(http.MethodGet)
		api.HandleFunc("/preferences", h.SetPreferences).Methods(http.MethodPut)
	}

	if h := rt.Transfer; h != nil {
		api.HandleFunc("/board/export", h.Export).Methods(http.MethodGet)
		api.HandleFunc("/board/import", h.Import).Methods(http.MethodPost)
	}

	if h := rt.ClientLog; h != nil {
		api.HandleFunc("/debug/logs", h.Capture).Methods(http.MethodPost)
	}

	// Preflight requests only need the CORS headers set by the router middleware.
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
