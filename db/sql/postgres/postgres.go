// Package postgres persists status class tallies in PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
)

// Connect opens a PostgreSQL connection using the provided options.
func Connect(ctx context.Context, opts ...Option) (*sql.DB, error) {
	return Open(ctx, opts...)
}

// Migrate applies the tally schema followed by any extra statements.
func Migrate(ctx context.Context, db *sql.DB, statements ...string) error {
	all := append([]string{DefaultTallyTableSchema, DefaultTallyIndexSchema}, statements...)
	return ApplyMigrations(ctx, db, all...)
}
