package channels

import (
	"errors"
	"fmt"
)

// Domain errors for channels
var (
	// ErrChannelNotFound is returned when a channel doesn't exist
	ErrChannelNotFound = errors.New("channel not found")

	// ErrOwnerNotFound is returned when the owning user doesn't exist
	ErrOwnerNotFound = errors.New("channel owner not found")

	// ErrInvalidID is returned when a channel or user id is not a valid identifier
	ErrInvalidID = errors.New("invalid id")

	// ErrNameTaken is returned when a channel name is already in use
	ErrNameTaken = errors.New("channel name is already taken")
)

// ValidationError wraps input validation errors with field details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrChannelNotFound) || errors.Is(err, ErrOwnerNotFound)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrNameTaken)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr) || errors.Is(err, ErrInvalidID)
}
