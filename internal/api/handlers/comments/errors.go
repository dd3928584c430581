package comments

import (
	"errors"
	"log"
	"net/http"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/comments"
)

func writeError(w http.ResponseWriter, status int, errorType, message string) {
	handlers.WriteError(w, status, errorType, message)
}

// handleServiceError maps comment service errors to HTTP status codes
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comments.ErrVideoNotFound):
		writeError(w, http.StatusNotFound, "VideoNotFound", "Video not found")
	case errors.Is(err, comments.ErrParentNotFound):
		writeError(w, http.StatusNotFound, "ParentNotFound", "Parent comment not found")
	case comments.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case comments.IsConflict(err):
		writeError(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Printf("Comment handler error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
