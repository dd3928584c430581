package videos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, video *Video) (*Video, error) {
	args := m.Called(ctx, video)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Video), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Video), args.Error(1)
}

func (m *MockRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Video), args.Error(1)
}

func (m *MockRepository) ListByChannel(ctx context.Context, channelID string) ([]*Video, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Video), args.Error(1)
}

func (m *MockRepository) ListByType(ctx context.Context, category string) ([]*Video, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Video), args.Error(1)
}

func (m *MockRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) SearchByTitle(ctx context.Context, query string) ([]*Video, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Video), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, video *Video) (*Video, error) {
	args := m.Called(ctx, video)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Video), args.Error(1)
}

func (m *MockRepository) SetReactions(ctx context.Context, id string, likedBy, dislikedBy []string) (*Video, error) {
	args := m.Called(ctx, id, likedBy, dislikedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Video), args.Error(1)
}

func (m *MockRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateVideo_Success(t *testing.T) {
	repo := new(MockRepository)
	svc := NewVideoService(repo, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(v *Video) bool {
		return v.Title == "Trailer" && v.Type == "Sci-Fi" && len(v.Tags) == 2 && v.ID != ""
	})).Return(&Video{ID: "v1", Title: "Trailer"}, nil)

	video, err := svc.CreateVideo(ctx, CreateVideoRequest{
		Title:      "  Trailer ",
		ChannelID:  uuid.NewString(),
		UploaderID: uuid.NewString(),
		Type:       "sci-fi",
		Tags:       []string{" space ", "", "film"},
	})
	require.NoError(t, err)
	assert.Equal(t, "v1", video.ID)
	repo.AssertExpectations(t)
}

func TestCreateVideo_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateVideoRequest
	}{
		{"missing title", CreateVideoRequest{ChannelID: "c", UploaderID: "u", Type: "Music"}},
		{"missing channel", CreateVideoRequest{Title: "t", UploaderID: "u", Type: "Music"}},
		{"missing uploader", CreateVideoRequest{Title: "t", ChannelID: "c", Type: "Music"}},
		{"unknown category", CreateVideoRequest{Title: "t", ChannelID: uuid.NewString(), UploaderID: uuid.NewString(), Type: "Polka"}},
		{"malformed channel", CreateVideoRequest{Title: "t", ChannelID: "abc", UploaderID: uuid.NewString(), Type: "Travel"}},
		{"malformed uploader", CreateVideoRequest{Title: "t", ChannelID: uuid.NewString(), UploaderID: "abc", Type: "Travel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewVideoService(repo, nil)

			_, err := svc.CreateVideo(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGetVideo_ReturnsCountBeforeView(t *testing.T) {
	repo := new(MockRepository)
	svc := NewVideoService(repo, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, "v1").Return(&Video{ID: "v1", Views: 7}, nil).Once()
	repo.On("IncrementViews", ctx, "v1").Return(nil).Once()

	video, err := svc.GetVideo(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), video.Views)
	repo.AssertExpectations(t)
}

func TestGetVideo_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewVideoService(repo, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, ErrVideoNotFound)

	_, err := svc.GetVideo(ctx, "missing")
	assert.True(t, IsNotFound(err))
	repo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestCreateVideo_UnknownUploader(t *testing.T) {
	repo := new(MockRepository)
	svc := NewVideoService(repo, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil, ErrUploaderNotFound)

	_, err := svc.CreateVideo(ctx, CreateVideoRequest{
		Title:      "t",
		ChannelID:  uuid.NewString(),
		UploaderID: uuid.NewString(),
		Type:       "Travel",
	})
	assert.ErrorIs(t, err, ErrUploaderNotFound)
	assert.True(t, IsNotFound(err))
}

func TestLike_MovesUserFromDislikes(t *testing.T) {
	repo := new(MockRepository)
	svc := NewVideoService(repo, nil)
	ctx := context.Background()
	user := uuid.NewString()

	repo.On("GetByID", ctx, "v1").Return(&Video{
		ID:         "v1",
		LikedBy:    []string{},
		DislikedBy: []string{user},
	}, nil)
	repo.On("SetReactions", ctx, "v1", []string{user}, []string{}).
		Return(&Video{ID: "v1", LikedBy: []string{user}, DislikedBy: []string{}, Likes: 1}, nil)

	video, err := svc.Like(ctx, "v1", user)
	require.NoError(t, err)
	assert.Equal(t, 1, video.Likes)
	assert.Equal(t, 0, video.Dislikes)
	repo.AssertExpectations(t)
}

func TestDislike_TogglesOff(t *testing.T) {
	repo := new(MockRepository)
	svc := NewVideoService(repo, nil)
	ctx := context.Background()
	user := uuid.NewString()

	repo.On("GetByID", ctx, "v1").Return(&Video{
		ID:         "v1",
		LikedBy:    []string{},
		DislikedBy: []string{user},
	}, nil)
	repo.On("SetReactions", ctx, "v1", []string{}, []string{}).
		Return(&Video{ID: "v1", LikedBy: []string{}, DislikedBy: []string{}}, nil)

	_, err := svc.Dislike(ctx, "v1", user)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLike_InvalidUser(t *testing.T) {
	repo := new(MockRepository)
	svc := NewVideoService(repo, nil)

	for _, userID := range []string{"", "not-a-uuid"} {
		_, err := svc.Like(context.Background(), "v1", userID)
		assert.ErrorIs(t, err, ErrInvalidUserID)
	}
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateVideo(t *testing.T) {
	repo := new(MockRepository)
	svc := NewVideoService(repo, nil)
	ctx := context.Background()

	existing := &Video{ID: "v1", Title: "Old", Type: "Music", Tags: []string{"a"}}
	repo.On("GetByID", ctx, "v1").Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(v *Video) bool {
		return v.Title == "New" && v.Type == "Comedy" && v.Description == ""
	})).Return(&Video{ID: "v1", Title: "New", Type: "Comedy"}, nil)

	title, category := "New", "COMEDY"
	updated, err := svc.UpdateVideo(ctx, "v1", UpdateVideoRequest{Title: &title, Type: &category})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)

	bad := "Polka"
	_, err = svc.UpdateVideo(ctx, "v1", UpdateVideoRequest{Type: &bad})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("tv shows")
	assert.True(t, ok)
	assert.Equal(t, Category("TV Shows"), c)

	_, ok = ParseCategory("Polka")
	assert.False(t, ok)

	assert.True(t, Category("DIY").Valid())
	assert.False(t, Category("diy").Valid())
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseTags(" a, ,b "))
	assert.Equal(t, []string{}, ParseTags(""))
}
