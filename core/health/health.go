// Package health provides HTTP handlers for service health monitoring.
//
// Liveness reports that the process is running without touching any
// dependency. Readiness runs every registered dependency check and reports
// 503 with the first failing check's name.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/identity/core/handler"
	"github.com/dmitrymomot/identity/core/logger"
	"github.com/dmitrymomot/identity/core/response"
)

// Liveness indicates the service process is running. No dependency checks.
func Liveness(*http.Request) handler.Response {
	return response.JSON(map[string]string{"status": "ok"})
}

// Readiness verifies all named dependencies are functioning. Returns 200 when
// every check passes and 503 naming the first failed dependency otherwise.
//
// Dependency checks follow the func(context.Context) error signature:
//
//	health.Readiness(log, map[string]func(context.Context) error{
//		"postgres": pg.Healthcheck(db),
//		"redis":    redis.Healthcheck(client),
//	})
func Readiness(log *slog.Logger, checks map[string]func(context.Context) error) handler.Func {
	if log == nil {
		log = slog.Default()
	}
	return func(r *http.Request) handler.Response {
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component("health"),
					slog.String("dependency", name),
					logger.Error(err))
				return response.JSONWithStatus(map[string]string{
					"status": "unhealthy",
					"failed": name,
				}, http.StatusServiceUnavailable)
			}
		}
		return response.JSON(map[string]string{"status": "ok"})
	}
}
