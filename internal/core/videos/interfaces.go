package videos

import "context"

// Repository defines the interface for video data persistence
type Repository interface {
	// Create inserts the video and appends its id to the owning channel's
	// video list and the uploader's uploads in one transaction. Returns
	// ErrChannelNotFound or ErrUploaderNotFound when either doesn't exist.
	Create(ctx context.Context, video *Video) (*Video, error)

	GetByID(ctx context.Context, id string) (*Video, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*Video, error)
	ListByChannel(ctx context.Context, channelID string) ([]*Video, error)

	// ListByType matches the category case-insensitively.
	ListByType(ctx context.Context, category string) ([]*Video, error)

	// DistinctTypes returns every category that at least one video uses.
	DistinctTypes(ctx context.Context) ([]string, error)

	// SearchByTitle is a case-insensitive substring match on the title.
	SearchByTitle(ctx context.Context, query string) ([]*Video, error)

	Update(ctx context.Context, video *Video) (*Video, error)

	// SetReactions overwrites both reaction sets. Last write wins.
	SetReactions(ctx context.Context, id string, likedBy, dislikedBy []string) (*Video, error)

	// IncrementViews bumps the view counter atomically.
	IncrementViews(ctx context.Context, id string) error

	// Delete removes the video, its comments, and every reference to it held
	// by channels and users.
	Delete(ctx context.Context, id string) error
}

// Service defines the interface for video business logic
type Service interface {
	CreateVideo(ctx context.Context, req CreateVideoRequest) (*Video, error)

	// GetVideo returns a video and counts the read as a view.
	GetVideo(ctx context.Context, id string) (*Video, error)

	ListVideos(ctx context.Context) ([]*Video, error)
	ListByChannel(ctx context.Context, channelID string) ([]*Video, error)
	ListByType(ctx context.Context, category string) ([]*Video, error)
	ListTypes(ctx context.Context) ([]string, error)
	UpdateVideo(ctx context.Context, id string, req UpdateVideoRequest) (*Video, error)
	DeleteVideo(ctx context.Context, id string) error

	// Like and Dislike toggle the user's reaction; the two are mutually exclusive.
	Like(ctx context.Context, videoID, userID string) (*Video, error)
	Dislike(ctx context.Context, videoID, userID string) (*Video, error)
}
