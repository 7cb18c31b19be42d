// Package handler defines the request processing primitives shared by all
// services in this repository.
//
// Handlers return a Response instead of writing directly to the
// http.ResponseWriter, which keeps rendering and error handling in one place:
//
//	func profile(r *http.Request) handler.Response {
//		user, err := currentUser(r)
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(user)
//	}
//
//	mux.Get("/profile", handler.Wrap(profile, response.JSONErrorHandler))
//
// Wrap adapts a Func to http.HandlerFunc so handlers plug into any router
// that accepts standard handlers.
package handler
