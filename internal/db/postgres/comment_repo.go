package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Theatrum/internal/core/comments"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts a single comment node. The composite foreign key rejects a
// parent that belongs to another video.
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, video_id, parent_id, author_id, author_name, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		comment.ID, comment.VideoID, comment.ParentID, comment.AuthorID, comment.AuthorName, comment.Text, comment.CreatedAt)
	if err != nil {
		switch {
		case isDuplicate(err, "comments_pkey"):
			return comments.ErrDuplicateID
		case isForeignKeyViolation(err, "comments_parent_fkey"):
			return comments.ErrParentNotFound
		case isForeignKeyViolation(err, "comments_video_id_fkey"):
			return comments.ErrVideoNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByVideo returns the flat thread in insertion order, so every parent
// precedes its replies
func (r *postgresCommentRepo) ListByVideo(ctx context.Context, videoID string) ([]*comments.Comment, error) {
	if !isUUID(videoID) {
		return []*comments.Comment{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, video_id, parent_id, author_id, author_name, text, created_at
		FROM comments
		WHERE video_id = $1
		ORDER BY seq`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*comments.Comment{}
	for rows.Next() {
		c := &comments.Comment{}
		var parentID sql.NullString
		if err := rows.Scan(&c.ID, &c.VideoID, &parentID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if parentID.Valid {
			p := parentID.String
			c.ParentID = &p
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return result, nil
}
