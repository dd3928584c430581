package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Theatrum/internal/core/channels"
	"Theatrum/internal/core/search"
	"Theatrum/internal/core/videos"

	"github.com/stretchr/testify/assert"
)

type searcherFunc func(ctx context.Context, query string) (*search.Results, error)

func (f searcherFunc) Search(ctx context.Context, query string) (*search.Results, error) {
	return f(ctx, query)
}

func TestHandleSearch(t *testing.T) {
	handler := NewHandler(searcherFunc(func(_ context.Context, q string) (*search.Results, error) {
		switch strings.TrimSpace(q) {
		case "":
			return nil, search.ErrQueryRequired
		case "boom":
			return nil, errors.New("db down")
		}
		return &search.Results{
			Videos:   []*videos.Video{{ID: "v-1", Title: "Alps"}},
			Channels: []*channels.Channel{},
		}, nil
	}))

	w := httptest.NewRecorder()
	handler.HandleSearch(w, httptest.NewRequest(http.MethodGet, "/api/search?q=alp", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"channels":[]`)
	assert.Contains(t, w.Body.String(), `"title":"Alps"`)

	w = httptest.NewRecorder()
	handler.HandleSearch(w, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	handler.HandleSearch(w, httptest.NewRequest(http.MethodGet, "/api/search?q=boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
