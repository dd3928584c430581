package comments

import "context"

// Repository defines the data access interface for comments.
//
// Comments are stored one row per node with a parent reference; a video's
// thread is rebuilt from the flat list on read.
type Repository interface {
	// Create inserts a single comment. The parent, when set, must already be
	// stored for the same video.
	Create(ctx context.Context, comment *Comment) error

	// ListByVideo returns every comment of a video in insertion order.
	// Parents always precede their replies.
	ListByVideo(ctx context.Context, videoID string) ([]*Comment, error)
}

// VideoLookup reports whether a video exists.
// Implemented by the videos repository.
type VideoLookup interface {
	Exists(ctx context.Context, videoID string) (bool, error)
}

// Service defines the business logic interface for comment operations
type Service interface {
	// AppendTopLevelComment adds a comment directly under the video.
	AppendTopLevelComment(ctx context.Context, videoID string, req CreateCommentRequest) (*Comment, error)

	// AppendReply adds a reply under any existing comment of the video, at any depth.
	// Returns ErrParentNotFound without writing anything when the parent is absent.
	AppendReply(ctx context.Context, videoID, parentCommentID string, req CreateCommentRequest) (*Comment, error)

	// ListComments returns the full nested thread of a video.
	ListComments(ctx context.Context, videoID string) ([]*Node, error)
}
