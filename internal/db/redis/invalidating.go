package redis

import (
	"context"

	"Theatrum/internal/core/channels"
	"Theatrum/internal/core/users"
)

// UserRepository drops the cached video lists after a user delete, which
// removes the user's channels and their videos underneath the video cache.
type UserRepository struct {
	users.UserRepository
	cache *CachedVideoRepository
}

// WrapUserRepository ties repo's deletes to the video list cache
func WrapUserRepository(repo users.UserRepository, cache *CachedVideoRepository) *UserRepository {
	return &UserRepository{UserRepository: repo, cache: cache}
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	err := r.UserRepository.Delete(ctx, id)
	if err == nil {
		r.cache.Invalidate(ctx)
	}
	return err
}

// ChannelRepository drops the cached video lists whenever the channel
// summary embedded in them can change.
type ChannelRepository struct {
	channels.Repository
	cache *CachedVideoRepository
}

// WrapChannelRepository ties repo's updates and deletes to the video list cache
func WrapChannelRepository(repo channels.Repository, cache *CachedVideoRepository) *ChannelRepository {
	return &ChannelRepository{Repository: repo, cache: cache}
}

func (r *ChannelRepository) Update(ctx context.Context, channel *channels.Channel) (*channels.Channel, error) {
	updated, err := r.Repository.Update(ctx, channel)
	if err == nil {
		r.cache.Invalidate(ctx)
	}
	return updated, err
}

func (r *ChannelRepository) Delete(ctx context.Context, id string) error {
	err := r.Repository.Delete(ctx, id)
	if err == nil {
		r.cache.Invalidate(ctx)
	}
	return err
}
