package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// ClientLogHandler relays browser console output into the server log so board
// interactions can be traced next to provider failures.
type ClientLogHandler struct {
	logger *log.Logger
	now    func() time.Time
}

type clientLogEntry struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type clientLogRequest struct {
	SessionID string           `json:"sessionId"`
	View      string           `json:"view"`
	Entries   []clientLogEntry `json:"entries"`
}

type clientLogResponse struct {
	Status string `json:"status"`
	Logged int    `json:"logged"`
}

func NewClientLogHandler(logger *log.Logger) *ClientLogHandler {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &ClientLogHandler{logger: logger, now: time.Now}
}

// Capture writes one line per non-empty entry.
func (h *ClientLogHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var payload clientLogRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	session := strings.TrimSpace(payload.SessionID)
	if session == "" {
		session = "anonymous"
	}
	view := strings.TrimSpace(payload.View)

	logged := 0
	for _, entry := range payload.Entries {
		message := strings.TrimSpace(entry.Message)
		if message == "" {
			continue
		}
		level := strings.ToUpper(strings.TrimSpace(entry.Level))
		if level == "" {
			level = "LOG"
		}
		ts := strings.TrimSpace(entry.Timestamp)
		if ts == "" {
			ts = h.now().UTC().Format(time.RFC3339)
		}
		h.logger.Printf("[client][session=%s][level=%s] view=%q ts=%s message=%s", session, level, view, ts, message)
		logged++
	}

	writeJSON(w, http.StatusOK, clientLogResponse{Status: "ok", Logged: logged})
}
