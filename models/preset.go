package models

import (
	"time"

	"nextgen/domain/engagement"

	"github.com/google/uuid"
)

// Preset is a named, saved filter selection
type Preset struct {
	ID        uuid.UUID                 `json:"id"`
	Name      string                    `json:"name"`
	Criteria  engagement.FilterCriteria `json:"criteria"`
	CreatedAt time.Time                 `json:"created_at"`
}

// NewPreset stamps a fresh ID and creation time
func NewPreset(name string, criteria engagement.FilterCriteria) *Preset {
	return &Preset{
		ID:        uuid.New(),
		Name:      name,
		Criteria:  criteria.Clone(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
