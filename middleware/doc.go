// Package middleware provides HTTP middleware for common cross-cutting
// concerns: request ID propagation, structured request logging, rate
// limiting, and security headers.
//
// All middleware use the standard func(http.Handler) http.Handler shape so
// they compose with chi routers and plain net/http servers alike:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.LoggingWithConfig(middleware.LoggingConfig{Logger: log}))
//	r.Use(middleware.SecurityHeaders())
//
// Rate limiting wraps a ratelimiter.RateLimiter and keys by client IP by
// default:
//
//	limiter, _ := ratelimiter.NewBucket(ratelimiter.NewRedisStore(rdb), cfg)
//	r.With(middleware.RateLimit(middleware.RateLimitConfig{
//		Limiter:    limiter,
//		SetHeaders: true,
//	})).Post("/oauth/token", tokenHandler)
package middleware
