package videos

import (
	"errors"
	"fmt"
)

// Sentinel errors for video operations
var (
	// ErrVideoNotFound is returned when a video lookup finds no matching record
	ErrVideoNotFound = errors.New("video not found")

	// ErrChannelNotFound is returned when a video references a channel that doesn't exist
	ErrChannelNotFound = errors.New("channel not found")

	// ErrUploaderNotFound is returned when a video references an uploader that doesn't exist
	ErrUploaderNotFound = errors.New("uploader not found")

	// ErrInvalidUserID is returned when a reaction carries a missing or malformed user id
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidCategory is returned for a type outside the known categories
	ErrInvalidCategory = errors.New("invalid video category")
)

// ValidationError reports a missing or malformed field on a video request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVideoNotFound) ||
		errors.Is(err, ErrChannelNotFound) ||
		errors.Is(err, ErrUploaderNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidCategory)
}
