package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// ApplyMigrations executes the provided SQL statements in order inside a
// single transaction; a failing statement rolls back the ones before it.
func ApplyMigrations(ctx context.Context, db *sql.DB, statements ...string) error {
	if db == nil {
		return ErrNilDB
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: migrate: begin: %w", err)
	}
	for i, stmt := range statements {
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("postgres: migrate: statement %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: migrate: commit: %w", err)
	}
	return nil
}
