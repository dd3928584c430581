package streaming

import "errors"

var (
	// ErrRangeRequired is returned when a stream request carries no Range header
	ErrRangeRequired = errors.New("range header required")

	// ErrInvalidRange is returned for a Range header that cannot be parsed
	ErrInvalidRange = errors.New("invalid Range header")

	// ErrRangeNotSatisfiable is returned when the range starts past the end of the file
	ErrRangeNotSatisfiable = errors.New("range not satisfiable")

	// ErrFileNotFound is returned when no stored video has the requested file name
	ErrFileNotFound = errors.New("file not found")
)

// IsRangeError reports whether err should be answered with 416
func IsRangeError(err error) bool {
	return errors.Is(err, ErrRangeRequired) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrRangeNotSatisfiable)
}
