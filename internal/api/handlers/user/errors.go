package user

import (
	"errors"
	"log"
	"net/http"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/users"
)

func writeError(w http.ResponseWriter, status int, errorType, message string) {
	handlers.WriteError(w, status, errorType, message)
}

// handleServiceError converts service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case users.IsNotFound(err):
		writeError(w, http.StatusNotFound, "UserNotFound", "User not found")
	case errors.Is(err, users.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "UserExists", "User already exists")
	case errors.Is(err, users.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "UsernameTaken", "Username is already taken")
	case errors.Is(err, users.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "InvalidCredentials", "Invalid credentials")
	case errors.Is(err, users.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid user ID")
	case users.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	default:
		log.Printf("User handler error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
