package binder

import (
	"fmt"
	"net/http"
)

// Form creates a binder for application/x-www-form-urlencoded bodies.
//
// Struct tags:
//   - `form:"name"` binds to form field "name"
//   - `form:"-"` skips the field
//
// Supported field types are strings, integers, unsigned integers, floats,
// bools, slices of those, and pointers for optional fields.
func Form() Binder {
	return func(r *http.Request, v any) error {
		mediaType := mediaTypeOf(r)
		if mediaType == "" {
			return fmt.Errorf("%w: expected application/x-www-form-urlencoded", ErrMissingContentType)
		}
		if mediaType != "application/x-www-form-urlencoded" {
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded", ErrUnsupportedMediaType, mediaType)
		}

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		return bindToStruct(v, "form", r.PostForm, ErrFailedToParseForm)
	}
}
