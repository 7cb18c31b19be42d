package tokenservice

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/identity/core/handler"
	"github.com/dmitrymomot/identity/core/health"
	"github.com/dmitrymomot/identity/core/response"
	"github.com/dmitrymomot/identity/middleware"
)

// NewRouter assembles the token service HTTP surface.
func NewRouter(h *Handler, healthchecks map[string]func(context.Context) error, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	errh := response.JSONErrorHandler

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger: log,
		Skip:   func(r *http.Request) bool { return r.URL.Path == "/health" },
	}))

	r.Post("/auth/token", handler.Wrap(h.Mint, errh))
	r.Post("/auth/validate", handler.Wrap(h.Validate, errh))
	r.Post("/auth/refresh", handler.Wrap(h.Refresh, errh))
	r.Post("/auth/revoke", handler.Wrap(h.Revoke, errh))

	r.With(h.BearerAuth).Get("/protected", handler.Wrap(h.Protected, errh))

	r.Get("/health", handler.Wrap(health.Readiness(log, healthchecks), errh))

	return r
}
