package response

import (
	"net/http"

	"github.com/dmitrymomot/identity/core/handler"
)

// Error returns a handler response that propagates the given error to the
// error handler installed with handler.Wrap.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
