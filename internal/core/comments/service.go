package comments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// commentService implements the Service interface
type commentService struct {
	commentRepo Repository
	videos      VideoLookup
	logger      *slog.Logger
	threadOpts  []ThreadOption
}

// NewCommentService creates a new comment service.
// threadOpts are applied to every thread the service loads; tests use them
// to pin ids and timestamps.
func NewCommentService(commentRepo Repository, videos VideoLookup, logger *slog.Logger, threadOpts ...ThreadOption) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		commentRepo: commentRepo,
		videos:      videos,
		logger:      logger,
		threadOpts:  threadOpts,
	}
}

// AppendTopLevelComment adds a comment directly under a video
func (s *commentService) AppendTopLevelComment(ctx context.Context, videoID string, req CreateCommentRequest) (*Comment, error) {
	thread, err := s.loadThread(ctx, videoID, req)
	if err != nil {
		return nil, err
	}

	comment := thread.AppendTopLevel(req.UserID, strings.TrimSpace(req.Username), req.Text)
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to store comment: %w", err)
	}

	s.logger.Info("comment created", "video_id", videoID, "comment_id", comment.ID)
	return comment, nil
}

// AppendReply adds a reply anywhere in a video's thread
func (s *commentService) AppendReply(ctx context.Context, videoID, parentCommentID string, req CreateCommentRequest) (*Comment, error) {
	thread, err := s.loadThread(ctx, videoID, req)
	if err != nil {
		return nil, err
	}

	reply, err := thread.AppendReply(parentCommentID, req.UserID, strings.TrimSpace(req.Username), req.Text)
	if err != nil {
		return nil, err
	}

	// Only the new node is written; the stored ancestors never change.
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to store reply: %w", err)
	}

	s.logger.Info("reply created",
		"video_id", videoID,
		"comment_id", reply.ID,
		"parent_id", parentCommentID)
	return reply, nil
}

// ListComments returns the nested comment thread of a video
func (s *commentService) ListComments(ctx context.Context, videoID string) ([]*Node, error) {
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}

	thread, err := s.readThread(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return thread.Tree(), nil
}

func (s *commentService) loadThread(ctx context.Context, videoID string, req CreateCommentRequest) (*Thread, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrAuthorRequired
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrContentEmpty
	}
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}
	return s.readThread(ctx, videoID)
}

func (s *commentService) readThread(ctx context.Context, videoID string) (*Thread, error) {
	stored, err := s.commentRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return LoadThread(videoID, stored, s.threadOpts...)
}

func (s *commentService) requireVideo(ctx context.Context, videoID string) error {
	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return fmt.Errorf("failed to check video: %w", err)
	}
	if !exists {
		return ErrVideoNotFound
	}
	return nil
}
