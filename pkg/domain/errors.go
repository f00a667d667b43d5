package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing entity, or one the caller may not act on.
type NotFoundError struct {
	Entity  string
	ID      string
	message string
}

// NewNotFoundError creates a NotFoundError for the given entity and identifier.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewNotFoundErrorf creates a NotFoundError with a custom message.
func NewNotFoundErrorf(format string, args ...any) *NotFoundError {
	return &NotFoundError{message: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string {
	if e.message != "" {
		return e.message
	}
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}

// ValidationError reports input that violates a business rule.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness violation or a lost optimistic lock.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string { return e.Message }

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConflict reports whether err is or wraps a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
