// Package jwt implements RFC 7519 JSON Web Tokens signed with HMAC-SHA256.
//
// The verifier is deliberately strict: the declared algorithm must be HS256
// and is checked before any MAC computation, tokens carrying a crit header
// are rejected, signatures compare in constant time, and temporal claims
// (exp, nbf) validate with zero clock skew.
//
// # Usage
//
//	service, err := jwt.NewFromString(cfg.Secret) // key must be >= 32 bytes
//	if err != nil {
//		return err
//	}
//
//	type AccessClaims struct {
//		jwt.StandardClaims
//		Email string `json:"email,omitempty"`
//	}
//
//	token, err := service.Generate(AccessClaims{
//		StandardClaims: jwt.StandardClaims{
//			ID:        uuid.NewString(),
//			Subject:   userID,
//			IssuedAt:  now.Unix(),
//			ExpiresAt: now.Add(ttl).Unix(),
//		},
//		Email: email,
//	})
//
//	var claims AccessClaims
//	err = service.Parse(token, &claims)
//	switch {
//	case errors.Is(err, jwt.ErrExpiredToken):
//		// exp is in the past
//	case errors.Is(err, jwt.ErrUnexpectedSigningMethod):
//		// header declared something other than HS256
//	case errors.Is(err, jwt.ErrInvalidSignature):
//		// MAC mismatch
//	case errors.Is(err, jwt.ErrInvalidToken):
//		// malformed structure, crit header, or nbf in the future
//	}
//
// StandardClaims covers the registered claims (jti, sub, iss, aud, exp, nbf,
// iat); embed it in a struct to add custom claims. The jti claim gives each
// token a stable identity for blacklist-based revocation.
package jwt
