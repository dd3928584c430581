package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Theatrum/internal/core/uploads"
	"Theatrum/internal/core/videos"
)

type postgresUploadStore struct {
	db     *sql.DB
	videos videos.Repository
}

// NewUploadStore creates the store the upload pipeline validates against and persists into
func NewUploadStore(db *sql.DB, videoRepo videos.Repository) uploads.Store {
	return &postgresUploadStore{db: db, videos: videoRepo}
}

func (s *postgresUploadStore) ChannelExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS(SELECT 1 FROM channels WHERE id = $1)`, id)
}

func (s *postgresUploadStore) UserExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
}

func (s *postgresUploadStore) exists(ctx context.Context, query, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check reference: %w", err)
	}
	return exists, nil
}

// PersistVideo writes the video row and appends it to the channel's videos
// and the uploader's uploaded videos in one transaction
func (s *postgresUploadStore) PersistVideo(ctx context.Context, video *videos.Video) (*videos.Video, error) {
	return s.videos.Create(ctx, video)
}
