package ports

import (
	"context"

	"nextgen/models"

	"github.com/google/uuid"
)

// PresetRepository defines storage operations for saved filter presets
type PresetRepository interface {
	// Save inserts a preset, or replaces the one with the same ID
	Save(ctx context.Context, preset *models.Preset) error

	// Get returns core.ErrPresetNotFound when the ID is unknown
	Get(ctx context.Context, id uuid.UUID) (*models.Preset, error)

	// List returns presets newest first
	List(ctx context.Context) ([]*models.Preset, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
