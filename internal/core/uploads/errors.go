package uploads

import "errors"

var (
	// ErrMissingFields indicates a required form field or the video file was not supplied
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidReference indicates the channel or uploader does not exist
	ErrInvalidReference = errors.New("invalid channel or uploader reference")

	// ErrInvalidCategory indicates the type field is not a known category
	ErrInvalidCategory = errors.New("invalid video category")

	// ErrMetadataExtractionFailed indicates the prober could not read the video
	ErrMetadataExtractionFailed = errors.New("metadata extraction failed")

	// ErrThumbnailGenerationFailed indicates no still frame could be produced
	ErrThumbnailGenerationFailed = errors.New("thumbnail generation failed")

	// ErrRemoteUploadFailed indicates the object store or the content store rejected an upload
	ErrRemoteUploadFailed = errors.New("remote upload failed")

	// ErrPersistFailed indicates the video document could not be written
	ErrPersistFailed = errors.New("failed to persist video")

	// ErrStagingFailed indicates the local file could not be moved into place
	ErrStagingFailed = errors.New("failed to stage uploaded file")
)

// IsValidationError checks if an error is a client input error
func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation
}
