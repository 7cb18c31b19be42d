package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are passed to the error handler wrapping the handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// Func is an HTTP request handler that returns its response as a Response.
// Returning instead of writing keeps error handling in one place.
type Func func(r *http.Request) Response

// ErrorHandler translates handler and rendering errors into HTTP responses.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Wrap adapts fn into an http.HandlerFunc. A nil Response writes nothing.
// Rendering errors go through errh; a nil errh falls back to a bare 500.
func Wrap(fn Func, errh ErrorHandler) http.HandlerFunc {
	if errh == nil {
		errh = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		resp := fn(r)
		if resp == nil {
			return
		}
		if err := resp(w, r); err != nil {
			errh(w, r, err)
		}
	}
}
