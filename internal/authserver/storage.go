package authserver

import (
	"context"
	"errors"
	"time"
)

// Domain-specific errors surfaced by Storage implementations.
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCodeNotFound        = errors.New("authorization code not found")
	ErrCodeExpired         = errors.New("authorization code expired")
	ErrRedirectURIMismatch = errors.New("redirect uri mismatch")
	ErrTokenNotFound       = errors.New("access token not found")
)

// Client is an OAuth2 client registration. Registrations are created
// out-of-band (seed migration) and read-only at runtime.
type Client struct {
	ID          string
	Secret      string
	RedirectURI string
}

// User is a resource owner record.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}

// AuthorizationCode is a one-time code issued on consent approval.
type AuthorizationCode struct {
	Code        string
	ClientID    string
	UserID      string
	RedirectURI string
	Scope       string
	ExpiresAt   time.Time
}

// AccessToken is an opaque bearer token issued on code exchange.
type AccessToken struct {
	Token     string
	ClientID  string
	UserID    string
	Scope     string
	ExpiresAt time.Time
}

// Storage is the persistence contract for the authorization server.
type Storage interface {
	// GetClient returns the registration for clientID or ErrClientNotFound.
	GetClient(ctx context.Context, clientID string) (Client, error)

	// GetUser returns the user record or ErrUserNotFound.
	GetUser(ctx context.Context, userID string) (User, error)

	// CreateAuthorizationCode persists a freshly issued code.
	CreateAuthorizationCode(ctx context.Context, code AuthorizationCode) error

	// ExchangeCode atomically consumes an authorization code and issues an
	// access token. It locks the code row, validates expiry and the exact
	// redirect URI match, inserts the token, and deletes the code in a single
	// transaction so concurrent exchanges of the same code succeed at most
	// once. Returns ErrCodeNotFound, ErrCodeExpired, or
	// ErrRedirectURIMismatch on validation failure.
	ExchangeCode(ctx context.Context, code, clientID, redirectURI, token string, tokenTTL time.Duration) (AccessToken, error)

	// GetAccessToken returns the token record or ErrTokenNotFound.
	GetAccessToken(ctx context.Context, token string) (AccessToken, error)
}
