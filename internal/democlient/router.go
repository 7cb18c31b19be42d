package democlient

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/identity/core/handler"
	"github.com/dmitrymomot/identity/core/response"
	"github.com/dmitrymomot/identity/middleware"
)

// NewRouter assembles the demo client HTTP surface.
func NewRouter(h *Handler, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	errh := response.ErrorHandler

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.LoggingWithConfig(middleware.LoggingConfig{Logger: log}))

	r.Get("/", handler.Wrap(h.Home, errh))
	r.Get("/login", handler.Wrap(h.Login, errh))
	r.Get("/callback", handler.Wrap(h.Callback, errh))

	return r
}
