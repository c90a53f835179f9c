// Package domain contains domain entities, value objects, and domain-specific errors.
// This package should have no external dependencies except the standard library.
package domain

import (
	"errors"
	"fmt"
)

// Domain error types for consistent error handling across the application.
// These errors represent business rule violations and domain constraints.

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden is returned when the caller may not perform the operation.
	// A missing or unknown API key is reported with this error.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when there's a conflict with the current state.
	ErrConflict = errors.New("conflict")

	// ErrEmptyCollection is returned when a pick is requested from an empty collection.
	ErrEmptyCollection = errors.New("empty collection")

	// ErrInternal is returned for unexpected conditions such as entropy failure.
	ErrInternal = errors.New("internal error")
)

// DomainError wraps a base error with additional context.
// It provides a standard way to add details to domain errors.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string

	// Cause is the lower-level error, if any
	Cause error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Base.Error(), e.Message, e.Field)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Base.Error(), e.Message)
	}
	return e.Base.Error()
}

// Unwrap returns the base error and the cause for errors.Is/As support.
func (e *DomainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Base, e.Cause}
	}
	return []error{e.Base}
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(message string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: message,
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NewConflictError creates a conflict error with context.
func NewConflictError(message string) *DomainError {
	return &DomainError{
		Base:    ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{
		Base:    ErrForbidden,
		Message: message,
	}
}

// NewEmptyCollectionError creates an error for picking from nothing.
func NewEmptyCollectionError(message string) *DomainError {
	return &DomainError{
		Base:    ErrEmptyCollection,
		Message: message,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(message string, cause error) *DomainError {
	return &DomainError{
		Base:    ErrInternal,
		Message: message,
		Cause:   cause,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsEmptyCollection checks if an error reports an empty collection.
func IsEmptyCollection(err error) bool {
	return errors.Is(err, ErrEmptyCollection)
}
