package channel

import (
	"errors"
	"log"
	"net/http"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/channels"
)

func writeError(w http.ResponseWriter, status int, errorType, message string) {
	handlers.WriteError(w, status, errorType, message)
}

// handleServiceError converts channel service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *channels.ValidationError
	switch {
	case errors.Is(err, channels.ErrChannelNotFound):
		writeError(w, http.StatusNotFound, "ChannelNotFound", "Channel not found")
	case errors.Is(err, channels.ErrOwnerNotFound):
		writeError(w, http.StatusNotFound, "OwnerNotFound", "Owner not found")
	case errors.Is(err, channels.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid channel ID")
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, "InvalidRequest", valErr.Message)
	case channels.IsConflict(err):
		writeError(w, http.StatusConflict, "NameTaken", err.Error())
	default:
		log.Printf("Channel handler error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
