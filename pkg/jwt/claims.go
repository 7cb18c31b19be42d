package jwt

import "time"

// StandardClaims holds the RFC 7519 registered claims.
// Embed it in custom claim structs to add application-specific fields.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid checks the temporal claims against now with zero clock skew.
// A token whose exp equals the current second is already expired.
func (c StandardClaims) Valid(now time.Time) error {
	ts := now.Unix()
	if c.ExpiresAt != 0 && c.ExpiresAt <= ts {
		return ErrExpiredToken
	}
	if c.NotBefore != 0 && c.NotBefore > ts {
		return ErrInvalidToken
	}
	return nil
}
