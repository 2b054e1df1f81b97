package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrAutoReferenceMissing is returned when a venta references an auto
	// that does not exist.
	ErrAutoReferenceMissing = errors.New("referenced auto does not exist")

	// ErrPaisReferenceMissing is returned when a persona references a pais
	// that does not exist.
	ErrPaisReferenceMissing = errors.New("referenced pais does not exist")

	// ErrTotalMismatch is matched by every *TotalMismatchError.
	ErrTotalMismatch = errors.New("venta total does not match precio*cantidad")
)

// ValidationError describes a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
