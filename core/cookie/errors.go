package cookie

import "errors"

var (
	// ErrNoSecret indicates no secret was provided for cookie signing.
	ErrNoSecret = errors.New("no secret provided for cookie manager")

	// ErrSecretTooShort indicates a signing secret under 32 bytes.
	ErrSecretTooShort = errors.New("secret must be at least 32 characters long")

	// ErrInvalidSignature indicates signature verification failed,
	// suggesting tampering or a rotated-out secret.
	ErrInvalidSignature = errors.New("cookie signature verification failed")

	// ErrCookieNotFound indicates the requested cookie is absent from the request.
	ErrCookieNotFound = errors.New("cookie not found in request")

	// ErrInvalidFormat indicates the cookie value is not in signed format.
	ErrInvalidFormat = errors.New("invalid cookie format")

	// ErrCookieTooLarge indicates the serialized cookie exceeds MaxCookieSize.
	ErrCookieTooLarge = errors.New("cookie exceeds maximum size")
)
