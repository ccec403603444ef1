package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/kiranshivaraju/gitpulse/internal/api/middleware"
	"github.com/kiranshivaraju/gitpulse/internal/api/response"
)

// Dependencies holds all handlers for the router.
type Dependencies struct {
	HealthHandler    http.HandlerFunc
	DashboardHandler http.HandlerFunc
	StreamHandler    http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Post("/api/v1/dashboard", orNotImplemented(deps.DashboardHandler))
	r.Get("/api/v1/dashboard/stream", orNotImplemented(deps.StreamHandler))

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
