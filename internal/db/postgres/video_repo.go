package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Theatrum/internal/core/videos"
)

type postgresVideoRepo struct {
	db *sql.DB
}

// NewVideoRepository creates a new PostgreSQL video repository
func NewVideoRepository(db *sql.DB) videos.Repository {
	return &postgresVideoRepo{db: db}
}

// Videos are always read with the summary of their channel
const videoSelect = `
	SELECT v.id, v.title, v.description, v.url, v.thumbnail_url, v.channel_id, v.uploader_id,
		v.type, v.tags, v.liked_by, v.disliked_by, v.views, v.duration, v.resolution, v.codec,
		v.upload_date, v.created_at, v.updated_at,
		c.name, c.logo, c.banner
	FROM videos v
	LEFT JOIN channels c ON c.id = v.channel_id`

func scanVideo(row rowScanner) (*videos.Video, error) {
	v := &videos.Video{}
	var tags, likedBy, dislikedBy pq.StringArray
	var channelName, channelLogo, channelBanner sql.NullString
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.ThumbnailURL, &v.ChannelID, &v.UploaderID,
		&v.Type, &tags, &likedBy, &dislikedBy, &v.Views,
		&v.Metadata.Duration, &v.Metadata.Resolution, &v.Metadata.Codec,
		&v.UploadDate, &v.CreatedAt, &v.UpdatedAt,
		&channelName, &channelLogo, &channelBanner)
	if err != nil {
		return nil, err
	}

	v.Tags = nonNil(tags)
	v.LikedBy = nonNil(likedBy)
	v.DislikedBy = nonNil(dislikedBy)
	v.RefreshCounts()
	if channelName.Valid {
		v.Channel = &videos.ChannelSummary{
			Name:   channelName.String,
			Logo:   channelLogo.String,
			Banner: channelBanner.String,
		}
	}
	return v, nil
}

func (r *postgresVideoRepo) queryVideos(ctx context.Context, query string, args ...any) ([]*videos.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*videos.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}
	return result, nil
}

// Create inserts the video and links it into its channel and its uploader
// in one transaction
func (r *postgresVideoRepo) Create(ctx context.Context, video *videos.Video) (*videos.Video, error) {
	if !isUUID(video.ChannelID) {
		return nil, videos.ErrChannelNotFound
	}
	if !isUUID(video.UploaderID) {
		return nil, videos.ErrUploaderNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(tx, "create video")

	if err := insertVideo(ctx, tx, video); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit video creation: %w", err)
	}
	return r.GetByID(ctx, video.ID)
}

// insertVideo writes the row plus both back references inside tx
func insertVideo(ctx context.Context, tx *sql.Tx, video *videos.Video) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO videos (id, title, description, url, thumbnail_url, channel_id, uploader_id,
			type, tags, liked_by, disliked_by, duration, resolution, codec, upload_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		video.ID, video.Title, video.Description, video.URL, video.ThumbnailURL, video.ChannelID, video.UploaderID,
		string(video.Type), pq.Array(nonNil(video.Tags)), pq.Array(nonNil(video.LikedBy)), pq.Array(nonNil(video.DislikedBy)),
		video.Metadata.Duration, video.Metadata.Resolution, video.Metadata.Codec, video.UploadDate)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE channels SET videos = array_append(videos, $2::uuid), updated_at = NOW()
		WHERE id = $1`, video.ChannelID, video.ID)
	if err != nil {
		return fmt.Errorf("failed to link video to channel: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check channel update: %w", err)
	} else if n == 0 {
		return videos.ErrChannelNotFound
	}

	result, err = tx.ExecContext(ctx, `
		UPDATE users SET uploaded_videos = array_append(uploaded_videos, $2::uuid), updated_at = NOW()
		WHERE id = $1`, video.UploaderID, video.ID)
	if err != nil {
		return fmt.Errorf("failed to link video to uploader: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check uploader update: %w", err)
	} else if n == 0 {
		return videos.ErrUploaderNotFound
	}
	return nil
}

func (r *postgresVideoRepo) GetByID(ctx context.Context, id string) (*videos.Video, error) {
	if !isUUID(id) {
		return nil, videos.ErrVideoNotFound
	}
	v, err := scanVideo(r.db.QueryRowContext(ctx, videoSelect+` WHERE v.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, videos.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return v, nil
}

func (r *postgresVideoRepo) Exists(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check video exists: %w", err)
	}
	return exists, nil
}

func (r *postgresVideoRepo) List(ctx context.Context) ([]*videos.Video, error) {
	return r.queryVideos(ctx, videoSelect+` ORDER BY v.upload_date DESC`)
}

func (r *postgresVideoRepo) ListByChannel(ctx context.Context, channelID string) ([]*videos.Video, error) {
	if !isUUID(channelID) {
		return []*videos.Video{}, nil
	}
	return r.queryVideos(ctx, videoSelect+` WHERE v.channel_id = $1 ORDER BY v.upload_date DESC`, channelID)
}

func (r *postgresVideoRepo) ListByType(ctx context.Context, category string) ([]*videos.Video, error) {
	return r.queryVideos(ctx, videoSelect+` WHERE LOWER(v.type) = LOWER($1) ORDER BY v.upload_date DESC`, category)
}

func (r *postgresVideoRepo) DistinctTypes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT type FROM videos ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to query video types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan video type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// SearchByTitle matches the query as a literal substring, ignoring case
func (r *postgresVideoRepo) SearchByTitle(ctx context.Context, query string) ([]*videos.Video, error) {
	return r.queryVideos(ctx, videoSelect+`
		WHERE v.title ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY v.upload_date DESC`, escapeLike(query))
}

func (r *postgresVideoRepo) Update(ctx context.Context, video *videos.Video) (*videos.Video, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, type = $5, tags = $6, updated_at = NOW()
		WHERE id = $1`,
		video.ID, video.Title, video.Description, video.ThumbnailURL, string(video.Type), pq.Array(nonNil(video.Tags)))
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	} else if n == 0 {
		return nil, videos.ErrVideoNotFound
	}
	return r.GetByID(ctx, video.ID)
}

// SetReactions overwrites both reaction sets and mirrors the like set onto
// each user's liked videos
func (r *postgresVideoRepo) SetReactions(ctx context.Context, id string, likedBy, dislikedBy []string) (*videos.Video, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(tx, "set reactions")

	liked := pq.Array(nonNil(likedBy))
	result, err := tx.ExecContext(ctx, `
		UPDATE videos SET liked_by = $2, disliked_by = $3, updated_at = NOW()
		WHERE id = $1`, id, liked, pq.Array(nonNil(dislikedBy)))
	if err != nil {
		return nil, fmt.Errorf("failed to set reactions: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check reaction update: %w", err)
	} else if n == 0 {
		return nil, videos.ErrVideoNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE users SET liked_videos = array_remove(liked_videos, $1::uuid)
		WHERE $1::uuid = ANY(liked_videos) AND NOT (id = ANY($2::uuid[]))`, id, liked); err != nil {
		return nil, fmt.Errorf("failed to unlink liked video: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE users SET liked_videos = array_append(liked_videos, $1::uuid)
		WHERE id = ANY($2::uuid[]) AND NOT ($1::uuid = ANY(liked_videos))`, id, liked); err != nil {
		return nil, fmt.Errorf("failed to link liked video: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reactions: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *postgresVideoRepo) IncrementViews(ctx context.Context, id string) error {
	if !isUUID(id) {
		return videos.ErrVideoNotFound
	}
	result, err := r.db.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check view update: %w", err)
	} else if n == 0 {
		return videos.ErrVideoNotFound
	}
	return nil
}

// Delete removes the video and every reference held by channels and users.
// Comments are removed by cascade.
func (r *postgresVideoRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return videos.ErrVideoNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(tx, "delete video")

	var channelID string
	err = tx.QueryRowContext(ctx, `DELETE FROM videos WHERE id = $1 RETURNING channel_id`, id).Scan(&channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return videos.ErrVideoNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE channels SET videos = array_remove(videos, $2::uuid), updated_at = NOW()
		WHERE id = $1`, channelID, id); err != nil {
		return fmt.Errorf("failed to unlink video from channel: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE users
		SET favorite_videos = array_remove(favorite_videos, $1::uuid),
			liked_videos = array_remove(liked_videos, $1::uuid),
			uploaded_videos = array_remove(uploaded_videos, $1::uuid),
			updated_at = NOW()
		WHERE $1::uuid = ANY(favorite_videos || liked_videos || uploaded_videos)`, id); err != nil {
		return fmt.Errorf("failed to unlink video from users: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit video deletion: %w", err)
	}
	return nil
}
