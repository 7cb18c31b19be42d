package authserver

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/identity/integration/database/pg"
)

// PostgresStorage implements Storage on a pgx connection pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Storage backed by the given pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) GetClient(ctx context.Context, clientID string) (Client, error) {
	var client Client
	err := s.pool.QueryRow(ctx,
		`SELECT client_id, client_secret, redirect_uri FROM clients WHERE client_id = $1`,
		clientID,
	).Scan(&client.ID, &client.Secret, &client.RedirectURI)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Client{}, ErrClientNotFound
		}
		return Client{}, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}

func (s *PostgresStorage) GetUser(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, username, password_hash FROM users WHERE user_id = $1`,
		userID,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *PostgresStorage) CreateAuthorizationCode(ctx context.Context, code AuthorizationCode) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO authorization_codes (code, client_id, user_id, redirect_uri, scope, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		code.Code, code.ClientID, code.UserID, code.RedirectURI, code.Scope, code.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create authorization code: %w", err)
	}
	return nil
}

// ExchangeCode consumes a code and issues a token in one transaction. The
// SELECT FOR UPDATE makes the code row the serialization point: of two
// concurrent exchanges exactly one sees the row, the other blocks and then
// finds it deleted.
func (s *PostgresStorage) ExchangeCode(ctx context.Context, code, clientID, redirectURI, token string, tokenTTL time.Duration) (AccessToken, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return AccessToken{}, fmt.Errorf("exchange code: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var stored AuthorizationCode
	err = tx.QueryRow(ctx,
		`SELECT code, client_id, user_id, redirect_uri, scope, expires_at
		 FROM authorization_codes
		 WHERE code = $1 AND client_id = $2
		 FOR UPDATE`,
		code, clientID,
	).Scan(&stored.Code, &stored.ClientID, &stored.UserID, &stored.RedirectURI, &stored.Scope, &stored.ExpiresAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return AccessToken{}, ErrCodeNotFound
		}
		return AccessToken{}, fmt.Errorf("exchange code: fetch: %w", err)
	}

	now := time.Now().UTC()
	if !stored.ExpiresAt.After(now) {
		// Expired codes are dead either way, drop the row while it is locked.
		if _, err := tx.Exec(ctx, `DELETE FROM authorization_codes WHERE code = $1`, code); err != nil {
			return AccessToken{}, fmt.Errorf("exchange code: delete expired: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return AccessToken{}, fmt.Errorf("exchange code: commit: %w", err)
		}
		return AccessToken{}, ErrCodeExpired
	}
	if stored.RedirectURI != redirectURI {
		return AccessToken{}, ErrRedirectURIMismatch
	}

	issued := AccessToken{
		Token:     token,
		ClientID:  clientID,
		UserID:    stored.UserID,
		Scope:     stored.Scope,
		ExpiresAt: now.Add(tokenTTL),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO access_tokens (token, client_id, user_id, scope, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		issued.Token, issued.ClientID, issued.UserID, issued.Scope, issued.ExpiresAt,
	)
	if err != nil {
		return AccessToken{}, fmt.Errorf("exchange code: insert token: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM authorization_codes WHERE code = $1`, code); err != nil {
		return AccessToken{}, fmt.Errorf("exchange code: delete code: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return AccessToken{}, fmt.Errorf("exchange code: commit: %w", err)
	}
	return issued, nil
}

func (s *PostgresStorage) GetAccessToken(ctx context.Context, token string) (AccessToken, error) {
	var stored AccessToken
	err := s.pool.QueryRow(ctx,
		`SELECT token, client_id, user_id, scope, expires_at FROM access_tokens WHERE token = $1`,
		token,
	).Scan(&stored.Token, &stored.ClientID, &stored.UserID, &stored.Scope, &stored.ExpiresAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return AccessToken{}, ErrTokenNotFound
		}
		return AccessToken{}, fmt.Errorf("get access token: %w", err)
	}
	return stored, nil
}
