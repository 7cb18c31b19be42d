// Package pg provides PostgreSQL connection management with embedded
// migrations and health checking on top of the pgx driver.
//
// # Key Features
//
//   - Connect: creates a pgxpool with retry logic and connection verification
//   - Migrate: applies goose migrations from an fs.FS (typically embed.FS)
//   - Healthcheck: returns a probe function for health endpoints
//   - Error classification helpers for common PostgreSQL error patterns
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg, logger); err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// The classification helpers give type-safe checks for common outcomes:
//
//	if pg.IsNotFoundError(err) { ... }        // pgx.ErrNoRows
//	if pg.IsDuplicateKeyError(err) { ... }    // unique constraint violation
//	if pg.IsForeignKeyViolationError(err) { ... }
//	if pg.IsTxClosedError(err) { ... }
package pg
