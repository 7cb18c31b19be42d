package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/identity/internal/authserver"
)

func init() {
	goose.AddMigrationContext(upSeedDemoData, downSeedDemoData)
}

// upSeedDemoData registers the demo OAuth2 client and the consent user the
// authorization flow binds approvals to. The password hash is computed at
// migration time so no credential material lives in the repository.
func upSeedDemoData(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO clients (client_id, client_secret, redirect_uri)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (client_id) DO NOTHING`,
		"demo-client", "s3cret", "http://127.0.0.1:8081/callback",
	)
	if err != nil {
		return err
	}

	passwordHash, err := authserver.HashPassword("demo-password")
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (user_id, username, password_hash)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO NOTHING`,
		"user_001", "demo", passwordHash,
	)
	return err
}

func downSeedDemoData(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, "user_001"); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE client_id = $1`, "demo-client")
	return err
}
