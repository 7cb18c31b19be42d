// Package binder maps HTTP request data (JSON bodies, urlencoded forms,
// query strings) onto tagged Go structs.
//
//	type tokenRequest struct {
//		GrantType   string `form:"grant_type"`
//		Code        string `form:"code"`
//		RedirectURI string `form:"redirect_uri"`
//	}
//
//	var req tokenRequest
//	if err := binder.Form()(r, &req); err != nil { ... }
package binder

import "net/http"

// Binder binds HTTP request data to a Go value.
type Binder func(r *http.Request, v any) error
