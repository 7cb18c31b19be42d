// Package migrations holds the embedded goose migrations for the
// authorization server schema and seed data.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
