package upload

import (
	"errors"
	"log"
	"net/http"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/uploads"
)

func writeError(w http.ResponseWriter, status int, errorType, message string) {
	handlers.WriteError(w, status, errorType, message)
}

// handleRunError maps a failed pipeline run to a response by its error kind
func handleRunError(w http.ResponseWriter, err error) {
	switch uploads.KindOf(err) {
	case uploads.KindValidation:
		writeError(w, http.StatusBadRequest, "InvalidRequest", validationMessage(err))
	case uploads.KindNotFound:
		writeError(w, http.StatusNotFound, "NotFound", err.Error())
	case uploads.KindExternalService:
		log.Printf("Upload pipeline external failure: %v", err)
		writeError(w, http.StatusInternalServerError, "ExternalServiceError", externalMessage(err))
	default:
		log.Printf("Upload pipeline error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}

func validationMessage(err error) string {
	var stageErr *uploads.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Err.Error()
	}
	return err.Error()
}

func externalMessage(err error) string {
	switch {
	case errors.Is(err, uploads.ErrMetadataExtractionFailed):
		return "Failed to extract metadata"
	case errors.Is(err, uploads.ErrThumbnailGenerationFailed):
		return "Failed to generate thumbnail"
	default:
		return "Failed to upload video"
	}
}
