package tokenservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Key prefixes in the credential store.
const (
	refreshKeyPrefix   = "refresh_token:"
	blacklistKeyPrefix = "blacklist:jti:"
)

// Domain-specific errors surfaced by the credential store.
var (
	ErrRefreshNotFound  = errors.New("refresh token not found")
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// RefreshData is the identity bound to a refresh handle.
type RefreshData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// CredentialStore keeps refresh handles and the revocation blacklist in
// Redis. Every entry carries a TTL: refresh handles live for the refresh
// expiry, blacklist entries only until the revoked token would have expired
// anyway, which bounds blacklist size by the number of unexpired tokens.
type CredentialStore struct {
	client *redis.Client
}

// NewCredentialStore creates a store on the given Redis client.
func NewCredentialStore(client *redis.Client) *CredentialStore {
	return &CredentialStore{client: client}
}

// IssueRefresh stores a fresh opaque handle bound to the user identity and
// returns it.
func (s *CredentialStore) IssueRefresh(ctx context.Context, userID, email string, ttl time.Duration) (string, error) {
	payload, err := json.Marshal(RefreshData{UserID: userID, Email: email})
	if err != nil {
		return "", fmt.Errorf("issue refresh: %w", err)
	}

	handle := uuid.NewString()
	if err := s.client.Set(ctx, refreshKeyPrefix+handle, payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: issue refresh: %v", ErrStoreUnavailable, err)
	}
	return handle, nil
}

// ConsumeRefresh atomically fetches and deletes the handle via GETDEL so a
// handle is usable at most once even under concurrent consumers. Unknown,
// expired, or already-consumed handles return ErrRefreshNotFound.
func (s *CredentialStore) ConsumeRefresh(ctx context.Context, handle string) (RefreshData, error) {
	payload, err := s.client.GetDel(ctx, refreshKeyPrefix+handle).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return RefreshData{}, ErrRefreshNotFound
		}
		return RefreshData{}, fmt.Errorf("%w: consume refresh: %v", ErrStoreUnavailable, err)
	}

	var data RefreshData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return RefreshData{}, fmt.Errorf("consume refresh: decode: %w", err)
	}
	return data, nil
}

// Revoke blacklists a token id for the remaining token lifetime.
// Re-revoking is idempotent.
func (s *CredentialStore) Revoke(ctx context.Context, jti string, remaining time.Duration) error {
	if err := s.client.Set(ctx, blacklistKeyPrefix+jti, "revoked", remaining).Err(); err != nil {
		return fmt.Errorf("%w: revoke: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether the token id is blacklisted. Store errors
// surface to the caller; they are never translated to "not revoked".
func (s *CredentialStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("%w: is revoked: %v", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
