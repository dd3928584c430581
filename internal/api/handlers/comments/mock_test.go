package comments

import (
	"context"

	"Theatrum/internal/core/comments"

	"github.com/stretchr/testify/mock"
)

// MockCommentService is a mock implementation of comments.Service
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AppendTopLevelComment(ctx context.Context, videoID string, req comments.CreateCommentRequest) (*comments.Comment, error) {
	args := m.Called(ctx, videoID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comments.Comment), args.Error(1)
}

func (m *MockCommentService) AppendReply(ctx context.Context, videoID, parentCommentID string, req comments.CreateCommentRequest) (*comments.Comment, error) {
	args := m.Called(ctx, videoID, parentCommentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comments.Comment), args.Error(1)
}

func (m *MockCommentService) ListComments(ctx context.Context, videoID string) ([]*comments.Node, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*comments.Node), args.Error(1)
}
