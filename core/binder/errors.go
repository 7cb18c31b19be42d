package binder

import "errors"

// Binding failures, wrapped with context by the individual binders.
var (
	// ErrUnsupportedMediaType indicates the Content-Type header specifies a
	// media type the binder does not handle.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrMissingContentType indicates the request lacks a Content-Type header.
	ErrMissingContentType = errors.New("missing content type")

	// ErrFailedToParseJSON indicates the request body is not valid JSON or
	// does not match the target struct.
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")

	// ErrFailedToParseForm indicates urlencoded form parsing or conversion failed.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToParseQuery indicates query parameter conversion failed.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
)
