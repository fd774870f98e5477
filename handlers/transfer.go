package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"watchboard/services/board"
	"watchboard/services/watchlist"
)

const maxImportBytes = 5 << 20

type transferService interface {
	Import(data []byte) (board.Board, error)
	Export() ([]byte, error)
}

var _ transferService = (*watchlist.Service)(nil)

// TransferHandler moves the whole board in and out as a flat JSON array.
type TransferHandler struct {
	Service transferService
}

func NewTransferHandler(s transferService) *TransferHandler {
	return &TransferHandler{Service: s}
}

// Export serves the board as a downloadable watchlist.json.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Export()
	if err != nil {
		log.Printf("[transfer] export failed: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", board.ExportFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import replaces the board with the uploaded array. Any decode problem is
// reported as a single generic failure and leaves the board untouched.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes+1))
	if err != nil || len(data) > maxImportBytes {
		http.Error(w, "import failed", http.StatusBadRequest)
		return
	}
	next, err := h.Service.Import(data)
	if err != nil {
		http.Error(w, "import failed", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, next)
}
