package response

import (
	"net/http"

	"github.com/dmitrymomot/identity/core/handler"
)

// String creates a text/plain response with 200 OK status.
func String(s string) handler.Response {
	return StringWithStatus(s, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(s string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write([]byte(s))
		return err
	}
}

// HTML creates a text/html response with 200 OK status.
func HTML(markup string) handler.Response {
	return HTMLWithStatus(markup, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with a custom status code.
func HTMLWithStatus(markup string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write([]byte(markup))
		return err
	}
}

// NoContent creates an empty 204 No Content response.
func NoContent() handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}
