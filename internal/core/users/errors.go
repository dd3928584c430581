package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering or updating to an email that belongs to another user
	ErrEmailTaken = errors.New("user already exists")

	// ErrUsernameTaken is returned when a username belongs to another user
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned when the password doesn't match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidID is returned when a user or video id is not a valid identifier
	ErrInvalidID = errors.New("invalid id")
)

type InvalidUsernameError struct {
	Username string
	Reason   string
}

func (e *InvalidUsernameError) Error() string {
	return fmt.Sprintf("invalid username %q: %s", e.Username, e.Reason)
}

type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address: %q", e.Email)
}

type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password does not meet strength requirements: %s", e.Reason)
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsConflict checks if an error is a uniqueness conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var usernameErr *InvalidUsernameError
	var emailErr *InvalidEmailError
	var passwordErr *WeakPasswordError
	return errors.As(err, &usernameErr) ||
		errors.As(err, &emailErr) ||
		errors.As(err, &passwordErr) ||
		errors.Is(err, ErrInvalidID)
}
