package uploads

import (
	"context"
	"time"

	"Theatrum/internal/core/videos"
)

// Prober reads duration, resolution and codec from a local video file
type Prober interface {
	Probe(ctx context.Context, path string) (videos.Metadata, error)
}

// Thumbnailer writes one still frame of a video as a JPEG of the given size
type Thumbnailer interface {
	Generate(ctx context.Context, videoPath, outPath string, offset time.Duration, width, height int) error
}

// ObjectStore holds the video files themselves
type ObjectStore interface {
	// Upload stores the local file under name and returns the store's id for it.
	Upload(ctx context.Context, name, localPath, contentType string) (string, error)

	// StreamingURL is the public URL clients use to fetch an object.
	StreamingURL(objectID string) string
}

// ContentStore holds small public assets such as thumbnails.
// Put creates the file or overwrites the existing one at path.
type ContentStore interface {
	Put(ctx context.Context, path string, content []byte) (string, error)
}

// Store is the persistence the pipeline needs
type Store interface {
	ChannelExists(ctx context.Context, channelID string) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)

	// PersistVideo writes the video and appends its id to the channel's
	// videos and the uploader's uploaded videos, atomically.
	PersistVideo(ctx context.Context, video *videos.Video) (*videos.Video, error)
}
