package authserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/identity/core/handler"
	"github.com/dmitrymomot/identity/core/health"
	"github.com/dmitrymomot/identity/core/response"
	"github.com/dmitrymomot/identity/middleware"
	"github.com/dmitrymomot/identity/pkg/ratelimiter"
)

// NewRouter assembles the authorization server HTTP surface. tokenLimiter
// guards only the token endpoint and may be nil to disable rate limiting
// (tests). healthchecks run on GET /health keyed by dependency name.
func NewRouter(h *Handler, tokenLimiter ratelimiter.RateLimiter, healthchecks map[string]func(context.Context) error, log *slog.Logger) http.Handler {
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

	r.Get("/oauth/authorize", handler.Wrap(h.AuthorizePage, errh))
	r.Post("/oauth/authorize", handler.Wrap(h.AuthorizeDecision, errh))
	r.Get("/oauth/userinfo", handler.Wrap(h.Userinfo, errh))

	token := handler.Wrap(h.Token, errh)
	if tokenLimiter != nil {
		r.With(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:    tokenLimiter,
			SetHeaders: true,
		})).Post("/oauth/token", token)
	} else {
		r.Post("/oauth/token", token)
	}

	r.Get("/health", handler.Wrap(health.Readiness(log, healthchecks), errh))

	return r
}
