package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// Searcher resolves a raw query into metadata records
type Searcher interface {
	Search(ctx context.Context, raw models.RawQuery) []models.MetadataRecord
}

type Handler struct {
	searcher Searcher
}

func New(searcher Searcher) *Handler {
	return &Handler{searcher: searcher}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Response helpers
func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, message string, code int) {
	level := slog.LevelWarn
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, message, "status", code, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, code, errorResponse{Error: message})
}
