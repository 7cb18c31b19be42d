package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identity/middleware"
)

func TestRequestID(t *testing.T) {
	t.Run("generates uuid and sets header", func(t *testing.T) {
		var inContext string
		h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inContext, _ = middleware.GetRequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		headerID := rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, headerID)
		assert.Equal(t, headerID, inContext)

		_, err := uuid.Parse(headerID)
		assert.NoError(t, err)
	})

	t.Run("ignores incoming header by default", func(t *testing.T) {
		h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Request-ID", "client-supplied")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.NotEqual(t, "client-supplied", rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses incoming header when configured", func(t *testing.T) {
		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and header name", func(t *testing.T) {
		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			HeaderName: "X-Trace-ID",
			Generator:  func() string { return "fixed" },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, "fixed", rec.Header().Get("X-Trace-ID"))
	})

	t.Run("skip bypasses middleware", func(t *testing.T) {
		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Skip: func(r *http.Request) bool { return true },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := middleware.GetRequestID(r.Context())
			assert.False(t, ok)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Empty(t, rec.Header().Get("X-Request-ID"))
	})
}
