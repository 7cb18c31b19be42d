package tokenservice

import "github.com/dmitrymomot/identity/pkg/jwt"

// AccessClaims is the JWT payload minted by the token service:
// sub, email, iat, exp, and a fresh jti per token.
type AccessClaims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}
