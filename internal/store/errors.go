package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects an entity,
	// for example through a check or foreign key constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrHasDependents is returned when a delete is refused because other
	// rows still reference the entity.
	ErrHasDependents = errors.New("entity is referenced by other entities")

	// Entity-specific "not found" errors

	ErrAutoNotFound    = fmt.Errorf("%w: auto", ErrNotFound)
	ErrVentaNotFound   = fmt.Errorf("%w: venta", ErrNotFound)
	ErrPersonaNotFound = fmt.Errorf("%w: persona", ErrNotFound)
	ErrPaisNotFound    = fmt.Errorf("%w: pais", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrPaisNombreExists indicates a pais with the same nombre already exists.
	ErrPaisNombreExists = fmt.Errorf("%w: pais nombre", ErrDuplicate)

	// ErrUsernameExists indicates a user with the same username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrAutoHasVentas indicates an auto cannot be deleted while ventas reference it.
	ErrAutoHasVentas = fmt.Errorf("%w: auto has ventas", ErrHasDependents)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "auto", "venta")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
