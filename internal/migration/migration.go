package migration

import (
	"context"

	"nextgen/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations. The DDL sticks to
// types shared by SQLite and PostgreSQL.
type MigrationRunner struct{}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{}
}

// Run executes all database migrations in order; it is safe to run repeatedly
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createFilterPresetsTable(ctx, db); err != nil {
		return errors.DatabaseError("failed to create filter_presets table", err)
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.DatabaseError("failed to create indexes", err)
	}

	return nil
}

func (r *MigrationRunner) createFilterPresetsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS filter_presets (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			criteria TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_filter_presets_created_at ON filter_presets (created_at)
	`)
	return err
}
