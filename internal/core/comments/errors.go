package comments

import "errors"

var (
	// ErrParentNotFound indicates the comment being replied to is not part of the video's thread
	ErrParentNotFound = errors.New("parent comment not found")

	// ErrVideoNotFound indicates the video the comment is attached to doesn't exist
	ErrVideoNotFound = errors.New("video not found")

	// ErrContentEmpty indicates comment text is empty
	ErrContentEmpty = errors.New("comment text is required")

	// ErrAuthorRequired indicates the request carried no author id
	ErrAuthorRequired = errors.New("comment author is required")

	// ErrDuplicateID indicates a comment id collided with one already in the thread
	ErrDuplicateID = errors.New("comment id already exists in thread")

	// ErrOrphanComment indicates a stored comment references a parent that was never loaded
	ErrOrphanComment = errors.New("stored comment references unknown parent")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrParentNotFound) ||
		errors.Is(err, ErrVideoNotFound)
}

// IsConflict checks if an error is a conflict/already exists error
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrContentEmpty) ||
		errors.Is(err, ErrAuthorRequired)
}
