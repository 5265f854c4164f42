package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"nextgen/domain/core"
	"nextgen/domain/engagement"
	"nextgen/internal/errors"
	"nextgen/models"
	"nextgen/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type presetRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Criteria  string    `db:"criteria"`
	CreatedAt time.Time `db:"created_at"`
}

func (row presetRow) toModel() (*models.Preset, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid preset id %q: %w", row.ID, err)
	}
	var criteria engagement.FilterCriteria
	if err := json.Unmarshal([]byte(row.Criteria), &criteria); err != nil {
		return nil, fmt.Errorf("invalid criteria for preset %s: %w", row.ID, err)
	}
	return &models.Preset{
		ID:        id,
		Name:      row.Name,
		Criteria:  criteria,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

// presetRepository implements ports.PresetRepository on SQLite or PostgreSQL
type presetRepository struct {
	db *sqlx.DB
}

// NewPresetRepository creates a new preset repository
func NewPresetRepository(db *sqlx.DB) ports.PresetRepository {
	return &presetRepository{db: db}
}

// Save upserts a preset by ID
func (r *presetRepository) Save(ctx context.Context, preset *models.Preset) error {
	criteria, err := json.Marshal(preset.Criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM filter_presets WHERE id = ?`), preset.ID.String()); err != nil {
		return errors.DatabaseError("failed to replace preset", err)
	}
	if _, err := tx.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO filter_presets (id, name, criteria, created_at)
		VALUES (?, ?, ?, ?)
	`), preset.ID.String(), preset.Name, string(criteria), preset.CreatedAt.UTC()); err != nil {
		return errors.DatabaseError("failed to save preset", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit preset", err)
	}
	return nil
}

// Get retrieves a preset by ID
func (r *presetRepository) Get(ctx context.Context, id uuid.UUID) (*models.Preset, error) {
	var row presetRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT id, name, criteria, created_at
		FROM filter_presets
		WHERE id = ?
	`), id.String())
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(core.NewPresetNotFoundError(id.String()), "failed to get preset")
		}
		return nil, errors.DatabaseError("failed to get preset", err)
	}
	return row.toModel()
}

// List returns every preset, newest first
func (r *presetRepository) List(ctx context.Context) ([]*models.Preset, error) {
	var rows []presetRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, criteria, created_at
		FROM filter_presets
		ORDER BY created_at DESC, name ASC
	`); err != nil {
		return nil, errors.DatabaseError("failed to list presets", err)
	}

	presets := make([]*models.Preset, 0, len(rows))
	for _, row := range rows {
		p, err := row.toModel()
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// Delete removes a preset by ID
func (r *presetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM filter_presets WHERE id = ?`), id.String())
	if err != nil {
		return errors.DatabaseError("failed to delete preset", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.DatabaseError("failed to delete preset", err)
	}
	if n == 0 {
		return errors.Wrap(core.NewPresetNotFoundError(id.String()), "failed to delete preset")
	}
	return nil
}
