package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Theatrum/internal/core/channels"
)

type postgresChannelRepo struct {
	db *sql.DB
}

// NewChannelRepository creates a new PostgreSQL channel repository
func NewChannelRepository(db *sql.DB) channels.Repository {
	return &postgresChannelRepo{db: db}
}

const channelColumns = `id, name, description, owner_id, logo, banner, subscribers, videos, created_at, updated_at`

func scanChannel(row rowScanner) (*channels.Channel, error) {
	c := &channels.Channel{}
	var subscribers, videoIDs pq.StringArray
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID, &c.Logo, &c.Banner,
		&subscribers, &videoIDs, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Subscribers = nonNil(subscribers)
	c.Videos = nonNil(videoIDs)
	c.SubscriberCount = len(c.Subscribers)
	return c, nil
}

func (r *postgresChannelRepo) queryChannels(ctx context.Context, query string, args ...any) ([]*channels.Channel, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*channels.Channel{}
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channels: %w", err)
	}
	return result, nil
}

// Create inserts the channel and appends it to the owner's created channels
func (r *postgresChannelRepo) Create(ctx context.Context, channel *channels.Channel) (*channels.Channel, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(tx, "create channel")

	result, err := tx.ExecContext(ctx, `
		UPDATE users SET created_channels = array_append(created_channels, $2::uuid), updated_at = NOW()
		WHERE id = $1`, channel.OwnerID, channel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to link channel to owner: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check owner update: %w", err)
	} else if n == 0 {
		return nil, channels.ErrOwnerNotFound
	}

	created, err := scanChannel(tx.QueryRowContext(ctx, `
		INSERT INTO channels (id, name, description, owner_id, logo, banner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+channelColumns,
		channel.ID, channel.Name, channel.Description, channel.OwnerID, channel.Logo, channel.Banner))
	if err != nil {
		if isForeignKeyViolation(err, "") {
			return nil, channels.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit channel creation: %w", err)
	}
	return created, nil
}

func (r *postgresChannelRepo) GetByID(ctx context.Context, id string) (*channels.Channel, error) {
	if !isUUID(id) {
		return nil, channels.ErrChannelNotFound
	}
	c, err := scanChannel(r.db.QueryRowContext(ctx, `SELECT `+channelColumns+` FROM channels WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, channels.ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return c, nil
}

// GetByOwner returns the user's oldest channel
func (r *postgresChannelRepo) GetByOwner(ctx context.Context, ownerID string) (*channels.Channel, error) {
	c, err := scanChannel(r.db.QueryRowContext(ctx, `
		SELECT `+channelColumns+` FROM channels
		WHERE owner_id = $1
		ORDER BY created_at
		LIMIT 1`, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, channels.ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel by owner: %w", err)
	}
	return c, nil
}

func (r *postgresChannelRepo) List(ctx context.Context) ([]*channels.Channel, error) {
	return r.queryChannels(ctx, `SELECT `+channelColumns+` FROM channels ORDER BY created_at`)
}

func (r *postgresChannelRepo) Exists(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM channels WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check channel exists: %w", err)
	}
	return exists, nil
}

// SearchByName matches the query as a literal substring, ignoring case
func (r *postgresChannelRepo) SearchByName(ctx context.Context, query string) ([]*channels.Channel, error) {
	return r.queryChannels(ctx, `
		SELECT `+channelColumns+` FROM channels
		WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at`, escapeLike(query))
}

func (r *postgresChannelRepo) Update(ctx context.Context, channel *channels.Channel) (*channels.Channel, error) {
	updated, err := scanChannel(r.db.QueryRowContext(ctx, `
		UPDATE channels
		SET name = $2, description = $3, logo = $4, banner = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+channelColumns,
		channel.ID, channel.Name, channel.Description, channel.Logo, channel.Banner))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, channels.ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update channel: %w", err)
	}
	return updated, nil
}

func (r *postgresChannelRepo) SetSubscribers(ctx context.Context, id string, subscribers []string) (*channels.Channel, error) {
	updated, err := scanChannel(r.db.QueryRowContext(ctx, `
		UPDATE channels SET subscribers = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+channelColumns,
		id, pq.Array(nonNil(subscribers))))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, channels.ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set subscribers: %w", err)
	}
	return updated, nil
}

// Delete removes the channel and its id from the owner's created channels
func (r *postgresChannelRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(tx, "delete channel")

	var ownerID string
	err = tx.QueryRowContext(ctx, `DELETE FROM channels WHERE id = $1 RETURNING owner_id`, id).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return channels.ErrChannelNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE users SET created_channels = array_remove(created_channels, $2::uuid), updated_at = NOW()
		WHERE id = $1`, ownerID, id); err != nil {
		return fmt.Errorf("failed to unlink channel from owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit channel deletion: %w", err)
	}
	return nil
}
