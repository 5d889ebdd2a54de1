package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dark1alex/lubimyczytac-abs/internal/abs"
	"github.com/dark1alex/lubimyczytac-abs/internal/models"
)

// HandleSearch serves GET /search?query=<raw>&author=<hint>.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, r, "Query parameter is required", http.StatusBadRequest)
		return
	}

	raw := models.RawQuery{
		Text:         query,
		HintedAuthor: strings.TrimSpace(r.URL.Query().Get("author")),
	}

	records := h.searcher.Search(r.Context(), raw)
	writeJSON(w, http.StatusOK, abs.NewResponse(records))
}

func (h *Handler) HandleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Unable to write healthcheck", "err", err)
	}
}
