package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identity/middleware"
)

func captureLog(t *testing.T, cfg middleware.LoggingConfig, handler http.HandlerFunc, req *http.Request) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	cfg.Logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := middleware.LoggingWithConfig(cfg)(handler)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if buf.Len() == 0 {
		return nil
	}
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogging(t *testing.T) {
	t.Run("logs completed request", func(t *testing.T) {
		entry := captureLog(t, middleware.LoggingConfig{}, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("created"))
		}, httptest.NewRequest("POST", "/oauth/token", nil))

		require.NotNil(t, entry)
		assert.Equal(t, "HTTP request completed", entry["msg"])
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "POST", entry["method"])
		assert.Equal(t, "/oauth/token", entry["path"])
		assert.EqualValues(t, http.StatusCreated, entry["status_code"])
		assert.EqualValues(t, len("created"), entry["bytes_out"])
	})

	t.Run("server error logs at error level", func(t *testing.T) {
		entry := captureLog(t, middleware.LoggingConfig{}, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, httptest.NewRequest("GET", "/", nil))

		require.NotNil(t, entry)
		assert.Equal(t, "ERROR", entry["level"])
	})

	t.Run("client error logs at warn level", func(t *testing.T) {
		entry := captureLog(t, middleware.LoggingConfig{}, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}, httptest.NewRequest("GET", "/", nil))

		require.NotNil(t, entry)
		assert.Equal(t, "WARN", entry["level"])
	})

	t.Run("skip suppresses logging", func(t *testing.T) {
		entry := captureLog(t, middleware.LoggingConfig{
			Skip: func(r *http.Request) bool { return r.URL.Path == "/health" },
		}, func(w http.ResponseWriter, r *http.Request) {}, httptest.NewRequest("GET", "/health", nil))

		assert.Nil(t, entry)
	})

	t.Run("includes request id when present", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))

		h := middleware.RequestID()(middleware.LoggingWithLogger(log)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.NotEmpty(t, entry["request_id"])
	})
}
