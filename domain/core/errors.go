package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound     = errors.New("resource not found")
	ErrPageNotFound = fmt.Errorf("%w: page", ErrNotFound)

	// Validation errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidCatalog = errors.New("invalid page catalog")
	ErrInvalidSetting = fmt.Errorf("%w: unknown setting", ErrInvalidInput)
)

// Error constructors with context
func NewPageNotFoundError(identifier string) error {
	return fmt.Errorf("%w: %q is not in the catalog", ErrPageNotFound, identifier)
}

func NewCatalogError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidCatalog)
}
