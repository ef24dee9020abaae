package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("repository: duplicate record")
	// ErrInvalidReference is returned when a write violates a foreign key constraint.
	ErrInvalidReference = errors.New("repository: invalid reference")
)

// mapError converts gorm errors into repository errors. It expects the
// connection to be opened with TranslateError so that driver specific
// constraint violations arrive as gorm sentinels.
func mapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
