// Package search finds videos by title and channels by name.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"Theatrum/internal/core/channels"
	"Theatrum/internal/core/videos"
)

// ErrQueryRequired is returned for an empty search query
var ErrQueryRequired = errors.New("search query is required")

// maxQueryLength bounds the substring the store has to scan for
const maxQueryLength = 200

// VideoSearcher matches videos by title
type VideoSearcher interface {
	SearchByTitle(ctx context.Context, query string) ([]*videos.Video, error)
}

// ChannelSearcher matches channels by name
type ChannelSearcher interface {
	SearchByName(ctx context.Context, query string) ([]*channels.Channel, error)
}

// Results holds both halves of a search
type Results struct {
	Videos   []*videos.Video     `json:"videos"`
	Channels []*channels.Channel `json:"channels"`
}

// Service runs case-insensitive substring searches
type Service struct {
	videos   VideoSearcher
	channels ChannelSearcher
}

// NewService creates a search service
func NewService(v VideoSearcher, c ChannelSearcher) *Service {
	return &Service{videos: v, channels: c}
}

// Search queries videos and channels concurrently
func (s *Service) Search(ctx context.Context, query string) (*Results, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
	}

	res := &Results{Videos: []*videos.Video{}, Channels: []*channels.Channel{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.videos.SearchByTitle(gctx, query)
		if err != nil {
			return fmt.Errorf("video search: %w", err)
		}
		if found != nil {
			res.Videos = found
		}
		return nil
	})
	g.Go(func() error {
		found, err := s.channels.SearchByName(gctx, query)
		if err != nil {
			return fmt.Errorf("channel search: %w", err)
		}
		if found != nil {
			res.Channels = found
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
