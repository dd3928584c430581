package channel

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Theatrum/internal/api/middleware"
	"Theatrum/internal/core/channels"
	"Theatrum/internal/core/videos"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockChannelService is a mock implementation of channels.Service
type MockChannelService struct {
	mock.Mock
}

func (m *MockChannelService) CreateChannel(ctx context.Context, req channels.CreateChannelRequest) (*channels.Channel, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channels.Channel), args.Error(1)
}

func (m *MockChannelService) GetChannel(ctx context.Context, id string) (*channels.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channels.Channel), args.Error(1)
}

func (m *MockChannelService) GetChannelByOwner(ctx context.Context, ownerID string) (*channels.ChannelWithVideos, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channels.ChannelWithVideos), args.Error(1)
}

func (m *MockChannelService) ListChannels(ctx context.Context) ([]*channels.Channel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*channels.Channel), args.Error(1)
}

func (m *MockChannelService) UpdateChannel(ctx context.Context, id string, req channels.UpdateChannelRequest) (*channels.Channel, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channels.Channel), args.Error(1)
}

func (m *MockChannelService) DeleteChannel(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockChannelService) ToggleSubscription(ctx context.Context, channelID, userID string) (*channels.SubscribeResult, error) {
	args := m.Called(ctx, channelID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channels.SubscribeResult), args.Error(1)
}

func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockChannelService)
		svc.On("CreateChannel", mock.Anything, channels.CreateChannelRequest{Name: "Cooking", Owner: "u-1"}).
			Return(&channels.Channel{ID: "ch-1", Name: "Cooking", OwnerID: "u-1"}, nil)

		w := httptest.NewRecorder()
		NewChannelsHandler(svc).HandleCreate(w, httptest.NewRequest(http.MethodPost, "/api/channels",
			bytes.NewBufferString(`{"name":"Cooking","owner":"u-1"}`)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"owner":"u-1"`)
	})

	t.Run("owner required", func(t *testing.T) {
		svc := new(MockChannelService)
		svc.On("CreateChannel", mock.Anything, mock.Anything).
			Return(nil, channels.NewValidationError("owner", "Owner is required"))

		w := httptest.NewRecorder()
		NewChannelsHandler(svc).HandleCreate(w, httptest.NewRequest(http.MethodPost, "/api/channels",
			bytes.NewBufferString(`{"name":"Cooking"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Owner is required"`)
	})

	t.Run("owner from token", func(t *testing.T) {
		svc := new(MockChannelService)
		svc.On("CreateChannel", mock.Anything, channels.CreateChannelRequest{Name: "Cooking", Owner: "u-9"}).
			Return(&channels.Channel{ID: "ch-1"}, nil)

		r := httptest.NewRequest(http.MethodPost, "/api/channels", bytes.NewBufferString(`{"name":"Cooking"}`))
		r = r.WithContext(middleware.SetTestUserID(r.Context(), "u-9"))
		w := httptest.NewRecorder()
		NewChannelsHandler(svc).HandleCreate(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestHandleGet(t *testing.T) {
	svc := new(MockChannelService)
	handler := NewChannelsHandler(svc)

	svc.On("GetChannel", mock.Anything, "bad").Return(nil, channels.ErrInvalidID)
	svc.On("GetChannel", mock.Anything, "gone").Return(nil, channels.ErrChannelNotFound)

	w := httptest.NewRecorder()
	handler.HandleGet(w, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "bad"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid channel ID")

	w = httptest.NewRecorder()
	handler.HandleGet(w, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "gone"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetByOwner(t *testing.T) {
	svc := new(MockChannelService)
	svc.On("GetChannelByOwner", mock.Anything, "u-1").Return(&channels.ChannelWithVideos{
		Channel: &channels.Channel{ID: "ch-1"},
		Videos:  []*videos.Video{{ID: "v-1", Title: "Alps"}},
	}, nil)

	w := httptest.NewRecorder()
	NewChannelsHandler(svc).HandleGetByOwner(w, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "userId", "u-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Alps"`)
}

func TestHandleDelete(t *testing.T) {
	svc := new(MockChannelService)
	svc.On("DeleteChannel", mock.Anything, "ch-1").Return(nil)

	w := httptest.NewRecorder()
	NewChannelsHandler(svc).HandleDelete(w, withURLParams(httptest.NewRequest(http.MethodDelete, "/", nil), "id", "ch-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Channel deleted"}`, w.Body.String())
}

func TestHandleSubscribe(t *testing.T) {
	svc := new(MockChannelService)
	svc.On("ToggleSubscription", mock.Anything, "ch-1", "u-2").Return(&channels.SubscribeResult{
		Channel:    &channels.Channel{ID: "ch-1", Subscribers: []string{"u-2"}, SubscriberCount: 1},
		Subscribed: true,
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"userId":"u-2"}`))
	NewChannelsHandler(svc).HandleSubscribe(w, withURLParams(r, "id", "ch-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Subscribed"))
	assert.Contains(t, w.Body.String(), `"subscribers":["u-2"]`)
}
