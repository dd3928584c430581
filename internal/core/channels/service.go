package channels

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const maxChannelNameLength = 100

type channelService struct {
	repo   Repository
	videos VideoLister
	logger *slog.Logger
}

// NewChannelService creates a new channel service
func NewChannelService(repo Repository, videos VideoLister, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &channelService{
		repo:   repo,
		videos: videos,
		logger: logger,
	}
}

// CreateChannel creates a channel owned by req.Owner
func (s *channelService) CreateChannel(ctx context.Context, req CreateChannelRequest) (*Channel, error) {
	if strings.TrimSpace(req.Owner) == "" {
		return nil, NewValidationError("owner", "Owner is required")
	}
	if _, err := uuid.Parse(req.Owner); err != nil {
		return nil, ErrInvalidID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if len(name) > maxChannelNameLength {
		return nil, NewValidationError("name", "name must be 100 characters or fewer")
	}

	channel := &Channel{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
		OwnerID:     req.Owner,
		Logo:        req.Logo,
		Banner:      req.Banner,
		Subscribers: []string{},
		Videos:      []string{},
	}

	created, err := s.repo.Create(ctx, channel)
	if err != nil {
		return nil, err
	}
	s.logger.Info("channel created", "channel_id", created.ID, "owner_id", created.OwnerID)
	return created, nil
}

// GetChannel retrieves a channel by id
func (s *channelService) GetChannel(ctx context.Context, id string) (*Channel, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

// GetChannelByOwner returns the user's channel with its videos loaded
func (s *channelService) GetChannelByOwner(ctx context.Context, ownerID string) (*ChannelWithVideos, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, ErrInvalidID
	}

	channel, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	vids, err := s.videos.ListByChannel(ctx, channel.ID)
	if err != nil {
		return nil, err
	}
	return &ChannelWithVideos{Channel: channel, Videos: vids}, nil
}

func (s *channelService) ListChannels(ctx context.Context) ([]*Channel, error) {
	return s.repo.List(ctx)
}

// UpdateChannel applies the non-nil fields of req
func (s *channelService) UpdateChannel(ctx context.Context, id string, req UpdateChannelRequest) (*Channel, error) {
	channel, err := s.GetChannel(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewValidationError("name", "name cannot be empty")
		}
		if len(name) > maxChannelNameLength {
			return nil, NewValidationError("name", "name must be 100 characters or fewer")
		}
		channel.Name = name
	}
	if req.Description != nil {
		channel.Description = *req.Description
	}
	if req.Logo != nil {
		channel.Logo = *req.Logo
	}
	if req.Banner != nil {
		channel.Banner = *req.Banner
	}

	return s.repo.Update(ctx, channel)
}

func (s *channelService) DeleteChannel(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("channel deleted", "channel_id", id)
	return nil
}

// ToggleSubscription flips the user's membership in the subscriber set.
// Concurrent toggles on one channel are last-write-wins.
func (s *channelService) ToggleSubscription(ctx context.Context, channelID, userID string) (*SubscribeResult, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, NewValidationError("userId", "a valid userId is required")
	}

	channel, err := s.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	subscribed := !slices.Contains(channel.Subscribers, userID)
	subscribers := make([]string, 0, len(channel.Subscribers)+1)
	for _, id := range channel.Subscribers {
		if id != userID {
			subscribers = append(subscribers, id)
		}
	}
	if subscribed {
		subscribers = append(subscribers, userID)
	}

	updated, err := s.repo.SetSubscribers(ctx, channelID, subscribers)
	if err != nil {
		return nil, err
	}
	return &SubscribeResult{Channel: updated, Subscribed: subscribed}, nil
}
