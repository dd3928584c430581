package videos

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type videoService struct {
	repo   Repository
	logger *slog.Logger
}

// NewVideoService creates a new video service
func NewVideoService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &videoService{repo: repo, logger: logger}
}

// CreateVideo stores a video document that was produced outside the upload pipeline
func (s *videoService) CreateVideo(ctx context.Context, req CreateVideoRequest) (*Video, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}
	category, _ := ParseCategory(req.Type)

	video := &Video{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		ChannelID:    req.ChannelID,
		UploaderID:   req.UploaderID,
		Type:         category,
		Tags:         normalizeTags(req.Tags),
		Metadata:     req.Metadata,
		LikedBy:      []string{},
		DislikedBy:   []string{},
	}

	created, err := s.repo.Create(ctx, video)
	if err != nil {
		return nil, err
	}
	s.logger.Info("video created", "video_id", created.ID, "channel_id", created.ChannelID)
	return created, nil
}

// GetVideo returns a video and records a view. The returned count does not
// include the view being recorded.
func (s *videoService) GetVideo(ctx context.Context, id string) (*Video, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *videoService) ListVideos(ctx context.Context) ([]*Video, error) {
	return s.repo.List(ctx)
}

func (s *videoService) ListByChannel(ctx context.Context, channelID string) ([]*Video, error) {
	return s.repo.ListByChannel(ctx, channelID)
}

// ListByType lists videos of a category, matched case-insensitively
func (s *videoService) ListByType(ctx context.Context, category string) ([]*Video, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, NewValidationError("type", "type is required")
	}
	return s.repo.ListByType(ctx, category)
}

// ListTypes returns the categories currently in use
func (s *videoService) ListTypes(ctx context.Context) ([]string, error) {
	return s.repo.DistinctTypes(ctx)
}

// UpdateVideo applies the non-nil fields of req
func (s *videoService) UpdateVideo(ctx context.Context, id string, req UpdateVideoRequest) (*Video, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewValidationError("title", "title cannot be empty")
		}
		video.Title = title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.ThumbnailURL != nil {
		video.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Type != nil {
		category, ok := ParseCategory(*req.Type)
		if !ok {
			return nil, ErrInvalidCategory
		}
		video.Type = category
	}
	if req.Tags != nil {
		video.Tags = normalizeTags(*req.Tags)
	}

	return s.repo.Update(ctx, video)
}

func (s *videoService) DeleteVideo(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("video deleted", "video_id", id)
	return nil
}

func (s *videoService) Like(ctx context.Context, videoID, userID string) (*Video, error) {
	return s.react(ctx, videoID, userID, ReactionLike)
}

func (s *videoService) Dislike(ctx context.Context, videoID, userID string) (*Video, error) {
	return s.react(ctx, videoID, userID, ReactionDislike)
}

// react is a read-modify-write on the reaction sets. Two concurrent toggles
// on the same video can lose one of the updates.
func (s *videoService) react(ctx context.Context, videoID, userID string, r Reaction) (*Video, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidUserID
	}

	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	likedBy, dislikedBy := ToggleReaction(video.LikedBy, video.DislikedBy, userID, r)
	updated, err := s.repo.SetReactions(ctx, videoID, likedBy, dislikedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", r, err)
	}
	return updated, nil
}

func validateCreateRequest(req CreateVideoRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return NewValidationError("title", "title is required")
	}
	for _, ref := range []struct{ field, id string }{
		{"channelId", req.ChannelID},
		{"uploaderId", req.UploaderID},
	} {
		if strings.TrimSpace(ref.id) == "" {
			return NewValidationError(ref.field, ref.field+" is required")
		}
		if _, err := uuid.Parse(ref.id); err != nil {
			return NewValidationError(ref.field, ref.field+" must be a valid id")
		}
	}
	if _, ok := ParseCategory(req.Type); !ok {
		return ErrInvalidCategory
	}
	return nil
}

// normalizeTags trims tags and drops empty entries
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseTags splits a comma separated tag list as sent by multipart forms
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return normalizeTags(strings.Split(raw, ","))
}
