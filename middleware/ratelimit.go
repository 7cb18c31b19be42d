package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/identity/core/handler"
	"github.com/dmitrymomot/identity/core/response"
	"github.com/dmitrymomot/identity/pkg/clientip"
	"github.com/dmitrymomot/identity/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Limiter is the rate limiting implementation to use (required)
	Limiter ratelimiter.RateLimiter
	// KeyFunc extracts the rate limiting key from requests (default: client IP)
	KeyFunc func(r *http.Request) string
	// ErrorHandler renders limit violations and store failures (default: response.JSONErrorHandler)
	ErrorHandler handler.ErrorHandler
	// SetHeaders determines whether to include rate limit information in response headers
	SetHeaders bool
}

// RateLimit creates a rate limiting middleware with the provided
// configuration. Requests over the limit get 429 Too Many Requests with a
// Retry-After header. Panics if no limiter is provided.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = clientip.GetIP
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = response.JSONErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Limiter.Allow(r.Context(), cfg.KeyFunc(r))
			if err != nil {
				cfg.ErrorHandler(w, r, response.ErrInternalServerError.WithError(err))
				return
			}

			if cfg.SetHeaders {
				setRateLimitHeaders(w, result)
			}

			if !result.Allowed() {
				httpErr := response.ErrTooManyRequests
				if retryAfter := result.RetryAfter(); retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
					httpErr = httpErr.WithDetails(map[string]any{
						"retry_after": fmt.Sprintf("%.0f", retryAfter.Seconds()),
					})
				}
				cfg.ErrorHandler(w, r, httpErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// setRateLimitHeaders adds the de facto standard X-RateLimit-* headers.
// The remaining count is clamped to zero so denied requests do not expose
// negative values.
func setRateLimitHeaders(w http.ResponseWriter, result ratelimiter.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
