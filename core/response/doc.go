// Package response provides handler.Response constructors for the response
// shapes used by the services in this repository: JSON bodies, redirects,
// rendered html/template pages, and structured HTTP errors.
//
// Errors flow through HTTPError. Handlers return response.Error(err) and the
// error handler installed with handler.Wrap decides the final representation:
//
//	mux.Post("/auth/token", handler.Wrap(svc.mint, response.JSONErrorHandler))
package response
