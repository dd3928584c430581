package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"Theatrum/internal/core/videos"
)

const (
	generationKey = "theatrum:videos:gen"
	keyPrefix     = "theatrum:videos"
)

// CachedVideoRepository serves the list queries of a video repository from
// Redis. Every write bumps a generation counter that is part of each cache
// key, so stale entries are never read again and simply expire.
// View counts in cached lists may lag by up to the TTL.
type CachedVideoRepository struct {
	videos.Repository
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewCachedVideoRepository wraps repo with a Redis read cache
func NewCachedVideoRepository(repo videos.Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedVideoRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedVideoRepository{Repository: repo, client: client, ttl: ttl, logger: logger}
}

func (c *CachedVideoRepository) List(ctx context.Context) ([]*videos.Video, error) {
	return cached(ctx, c, "list", func() ([]*videos.Video, error) {
		return c.Repository.List(ctx)
	})
}

func (c *CachedVideoRepository) ListByType(ctx context.Context, category string) ([]*videos.Video, error) {
	return cached(ctx, c, "type:"+strings.ToLower(category), func() ([]*videos.Video, error) {
		return c.Repository.ListByType(ctx, category)
	})
}

func (c *CachedVideoRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	return cached(ctx, c, "types", func() ([]string, error) {
		return c.Repository.DistinctTypes(ctx)
	})
}

func (c *CachedVideoRepository) Create(ctx context.Context, video *videos.Video) (*videos.Video, error) {
	v, err := c.Repository.Create(ctx, video)
	if err == nil {
		c.invalidate(ctx)
	}
	return v, err
}

func (c *CachedVideoRepository) Update(ctx context.Context, video *videos.Video) (*videos.Video, error) {
	v, err := c.Repository.Update(ctx, video)
	if err == nil {
		c.invalidate(ctx)
	}
	return v, err
}

func (c *CachedVideoRepository) SetReactions(ctx context.Context, id string, likedBy, dislikedBy []string) (*videos.Video, error) {
	v, err := c.Repository.SetReactions(ctx, id, likedBy, dislikedBy)
	if err == nil {
		c.invalidate(ctx)
	}
	return v, err
}

func (c *CachedVideoRepository) Delete(ctx context.Context, id string) error {
	err := c.Repository.Delete(ctx, id)
	if err == nil {
		c.invalidate(ctx)
	}
	return err
}

// Invalidate drops every cached list. UserRepository and ChannelRepository
// call it for writes that bypass this repository.
func (c *CachedVideoRepository) Invalidate(ctx context.Context) {
	c.invalidate(ctx)
}

func (c *CachedVideoRepository) invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate video cache", "error", err)
	}
}

func (c *CachedVideoRepository) key(ctx context.Context, name string) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, gen, name), nil
}

// cached is read-through: Redis failures fall back to load and never fail the call
func cached[T any](ctx context.Context, c *CachedVideoRepository, name string, load func() (T, error)) (T, error) {
	key, err := c.key(ctx, name)
	if err != nil {
		c.logger.Warn("video cache unavailable", "error", err)
		return load()
	}

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var hit T
		if err := json.Unmarshal(raw, &hit); err == nil {
			return hit, nil
		}
		c.logger.Warn("discarding corrupt video cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("video cache read failed", "key", key, "error", err)
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if raw, err := json.Marshal(value); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("video cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}
