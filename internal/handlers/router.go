package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the HTTP routes. Authorization is checked before any
// request validation so that an unauthenticated call always gets 401.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog)
	r.Use(Recover)
	r.Use(CORS)

	r.Get("/healthcheck", h.HandleHealthcheck)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuthorization)
		r.Get("/search", h.HandleSearch)
	})

	return r
}
