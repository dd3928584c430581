package video

import (
	"errors"
	"log"
	"net/http"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/comments"
	"Theatrum/internal/core/videos"
)

func writeError(w http.ResponseWriter, status int, errorType, message string) {
	handlers.WriteError(w, status, errorType, message)
}

// handleServiceError converts video and comment service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, videos.ErrVideoNotFound), errors.Is(err, comments.ErrVideoNotFound):
		writeError(w, http.StatusNotFound, "VideoNotFound", "Video not found")
	case errors.Is(err, videos.ErrChannelNotFound):
		writeError(w, http.StatusNotFound, "ChannelNotFound", "Channel not found")
	case errors.Is(err, videos.ErrUploaderNotFound):
		writeError(w, http.StatusNotFound, "UploaderNotFound", "Uploader not found")
	case errors.Is(err, videos.ErrInvalidUserID):
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid user ID")
	case videos.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	default:
		log.Printf("Video handler error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
