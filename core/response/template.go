package response

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/identity/core/handler"
)

// Template renders the named template with 200 OK status.
func Template(t *template.Template, name string, data any) handler.Response {
	return TemplateWithStatus(t, name, data, http.StatusOK)
}

// TemplateWithStatus renders the named template with a custom status code.
// The template executes into a buffer first so a rendering failure can still
// reach the error handler instead of producing a half-written page.
func TemplateWithStatus(t *template.Template, name string, data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, name, data); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, err := buf.WriteTo(w)
		return err
	}
}
