package jwt

import "errors"

var (
	// ErrInvalidToken indicates malformed token structure or nbf validation failure.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token is past its expiration time.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidSignature indicates signature verification failed.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrUnexpectedSigningMethod indicates the token header declares an
	// algorithm other than HS256.
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")

	// ErrMissingSigningKey indicates the service was created without a key.
	ErrMissingSigningKey = errors.New("missing signing key")

	// ErrInvalidSigningKey indicates the signing key is too short for HS256.
	ErrInvalidSigningKey = errors.New("invalid signing key")

	// ErrMissingClaims indicates Generate was called with nil claims.
	ErrMissingClaims = errors.New("missing claims")

	// ErrSigningFailed indicates claim serialization failed during generation.
	ErrSigningFailed = errors.New("failed to sign token")
)
