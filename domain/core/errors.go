package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrPresetNotFound = fmt.Errorf("%w: preset", ErrNotFound)

	// Load errors
	ErrLoad           = errors.New("dataset load failed")
	ErrSourceMissing  = fmt.Errorf("%w: source missing", ErrLoad)
	ErrMissingColumn  = fmt.Errorf("%w: required column missing", ErrLoad)
	ErrMalformedValue = fmt.Errorf("%w: malformed value", ErrLoad)
	ErrUnsupported    = fmt.Errorf("%w: unsupported source type", ErrLoad)

	// Input errors
	ErrInvalidCriteria = errors.New("invalid filter criteria")
)

// Error constructors with context
func NewPresetNotFoundError(id string) error {
	return fmt.Errorf("%w with id %s", ErrPresetNotFound, id)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewMalformedValueError(row int, column, value string, err error) error {
	return fmt.Errorf("%w: row %d column %s value %q: %v", ErrMalformedValue, row, column, value, err)
}

func NewInvalidCriteriaError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidCriteria, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoad)
}

func IsInvalidCriteriaError(err error) bool {
	return errors.Is(err, ErrInvalidCriteria)
}
