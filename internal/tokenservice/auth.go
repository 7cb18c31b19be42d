package tokenservice

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/identity/core/logger"
	"github.com/dmitrymomot/identity/core/response"
)

// claimsContextKey is used as a key for storing verified claims in request context.
type claimsContextKey struct{}

// ClaimsFromContext retrieves the verified claims attached by BearerAuth.
func ClaimsFromContext(ctx context.Context) (AccessClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(AccessClaims)
	return claims, ok
}

// BearerAuth guards routes with a verified, unrevoked access token. The
// claims land in the request context for downstream handlers. Blacklist
// store errors fail closed with 500.
func (h *Handler) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			_ = tsErr(http.StatusUnauthorized, "missing or malformed Authorization header")(w, r)
			return
		}

		var claims AccessClaims
		if err := h.signer.Parse(token, &claims); err != nil {
			_ = tsErr(http.StatusUnauthorized, validationMessage(err))(w, r)
			return
		}

		revoked, err := h.store.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			h.log.ErrorContext(r.Context(), "revocation check failed",
				logger.Component("tokenservice"),
				logger.Error(err))
			_ = response.JSONWithStatus(tsError{Error: "revocation status unavailable"}, http.StatusInternalServerError)(w, r)
			return
		}
		if revoked {
			_ = tsErr(http.StatusUnauthorized, "Token has been revoked")(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
