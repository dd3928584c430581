package video

import (
	"context"

	"Theatrum/internal/core/comments"
	"Theatrum/internal/core/videos"

	"github.com/stretchr/testify/mock"
)

// MockVideoService is a mock implementation of videos.Service
type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) CreateVideo(ctx context.Context, req videos.CreateVideoRequest) (*videos.Video, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*videos.Video), args.Error(1)
}

func (m *MockVideoService) GetVideo(ctx context.Context, id string) (*videos.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*videos.Video), args.Error(1)
}

func (m *MockVideoService) ListVideos(ctx context.Context) ([]*videos.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*videos.Video), args.Error(1)
}

func (m *MockVideoService) ListByChannel(ctx context.Context, channelID string) ([]*videos.Video, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*videos.Video), args.Error(1)
}

func (m *MockVideoService) ListByType(ctx context.Context, category string) ([]*videos.Video, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*videos.Video), args.Error(1)
}

func (m *MockVideoService) ListTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockVideoService) UpdateVideo(ctx context.Context, id string, req videos.UpdateVideoRequest) (*videos.Video, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*videos.Video), args.Error(1)
}

func (m *MockVideoService) DeleteVideo(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVideoService) Like(ctx context.Context, videoID, userID string) (*videos.Video, error) {
	args := m.Called(ctx, videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*videos.Video), args.Error(1)
}

func (m *MockVideoService) Dislike(ctx context.Context, videoID, userID string) (*videos.Video, error) {
	args := m.Called(ctx, videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*videos.Video), args.Error(1)
}

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
