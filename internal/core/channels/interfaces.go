package channels

import (
	"context"

	"Theatrum/internal/core/videos"
)

// Repository defines the interface for channel persistence
type Repository interface {
	// Create inserts the channel and links it into the owner's created
	// channels in one transaction. Returns ErrOwnerNotFound when the owner
	// doesn't exist.
	Create(ctx context.Context, channel *Channel) (*Channel, error)

	GetByID(ctx context.Context, id string) (*Channel, error)

	// GetByOwner returns the first channel the user created.
	GetByOwner(ctx context.Context, ownerID string) (*Channel, error)

	List(ctx context.Context) ([]*Channel, error)
	Exists(ctx context.Context, id string) (bool, error)

	// SearchByName is a case-insensitive substring match on the channel name.
	SearchByName(ctx context.Context, query string) ([]*Channel, error)

	Update(ctx context.Context, channel *Channel) (*Channel, error)

	// SetSubscribers overwrites the subscriber set. Last write wins.
	SetSubscribers(ctx context.Context, id string, subscribers []string) (*Channel, error)

	// Delete removes the channel and unlinks it from its owner.
	Delete(ctx context.Context, id string) error
}

// VideoLister loads the videos published on a channel.
type VideoLister interface {
	ListByChannel(ctx context.Context, channelID string) ([]*videos.Video, error)
}

// Service defines the interface for channel business logic
type Service interface {
	CreateChannel(ctx context.Context, req CreateChannelRequest) (*Channel, error)
	GetChannel(ctx context.Context, id string) (*Channel, error)
	GetChannelByOwner(ctx context.Context, ownerID string) (*ChannelWithVideos, error)
	ListChannels(ctx context.Context) ([]*Channel, error)
	UpdateChannel(ctx context.Context, id string, req UpdateChannelRequest) (*Channel, error)
	DeleteChannel(ctx context.Context, id string) error

	// ToggleSubscription subscribes the user, or unsubscribes if already subscribed.
	ToggleSubscription(ctx context.Context, channelID, userID string) (*SubscribeResult, error)
}
