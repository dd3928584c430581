package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Theatrum/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, profile_pic,
	favorite_videos, liked_videos, uploaded_videos, created_channels,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*users.User, error) {
	user := &users.User{}
	var favorites, liked, uploaded, channels pq.StringArray
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.ProfilePic,
		&favorites, &liked, &uploaded, &channels,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.FavoriteVideos = nonNil(favorites)
	user.LikedVideos = nonNil(liked)
	user.UploadedVideos = nonNil(uploaded)
	user.CreatedChannels = nonNil(channels)
	return user, nil
}

func mapUserWriteError(err error, op string) error {
	switch {
	case isDuplicate(err, "users_email_key"):
		return users.ErrEmailTaken
	case isDuplicate(err, "users_username_key"):
		return users.ErrUsernameTaken
	}
	return fmt.Errorf("failed to %s user: %w", op, err)
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (id, username, email, password_hash, profile_pic)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.ProfilePic))
	if err != nil {
		return nil, mapUserWriteError(err, "create")
	}
	return created, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	if !isUUID(id) {
		return nil, users.ErrUserNotFound
	}
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by their (already normalized) email
func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepo) List(ctx context.Context) ([]*users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*users.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return result, nil
}

func (r *postgresUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user exists: %w", err)
	}
	return exists, nil
}

// Update writes the editable account fields
func (r *postgresUserRepo) Update(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, profile_pic = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.ProfilePic))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, mapUserWriteError(err, "update")
	}
	return updated, nil
}

// AddFavorite appends the video id once; repeated calls are no-ops
func (r *postgresUserRepo) AddFavorite(ctx context.Context, userID, videoID string) (*users.User, error) {
	query := `
		UPDATE users
		SET favorite_videos = CASE
				WHEN $2::uuid = ANY(favorite_videos) THEN favorite_videos
				ELSE array_append(favorite_videos, $2::uuid)
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userID, videoID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return user, nil
}

// Delete removes the user, the channels they own and every video on those
// channels, in one transaction. Comments go with their videos by cascade.
func (r *postgresUserRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction for user=%s: %w", id, err)
	}
	defer rollback(tx, "delete user")

	// 1. Videos published on the user's channels
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM videos
		WHERE channel_id IN (SELECT id FROM channels WHERE owner_id = $1)`, id); err != nil {
		return fmt.Errorf("failed to delete videos for user=%s: %w", id, err)
	}

	// 2. The channels themselves
	if _, err := tx.ExecContext(ctx, `DELETE FROM channels WHERE owner_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete channels for user=%s: %w", id, err)
	}

	// 3. Subscriptions and reactions the user left elsewhere
	if _, err := tx.ExecContext(ctx, `
		UPDATE channels SET subscribers = array_remove(subscribers, $1::uuid)
		WHERE $1::uuid = ANY(subscribers)`, id); err != nil {
		return fmt.Errorf("failed to remove subscriptions for user=%s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE videos
		SET liked_by = array_remove(liked_by, $1::uuid), disliked_by = array_remove(disliked_by, $1::uuid)
		WHERE $1::uuid = ANY(liked_by) OR $1::uuid = ANY(disliked_by)`, id); err != nil {
		return fmt.Errorf("failed to remove reactions for user=%s: %w", id, err)
	}

	// 4. The user
	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user=%s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return users.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}
	return nil
}
