package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Theatrum/internal/core/users"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// withURLParams attaches chi route params to a request
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleGet(t *testing.T) {
	svc := new(MockUserService)
	handler := NewUsersHandler(svc)

	svc.On("GetUser", mock.Anything, "u-1").Return(&users.User{ID: "u-1", Username: "alice"}, nil)
	svc.On("GetUser", mock.Anything, "u-2").Return(nil, users.ErrUserNotFound)
	svc.On("GetUser", mock.Anything, "junk").Return(nil, users.ErrInvalidID)

	w := httptest.NewRecorder()
	handler.HandleGet(w, withURLParams(httptest.NewRequest(http.MethodGet, "/api/users/u-1", nil), "id", "u-1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	w = httptest.NewRecorder()
	handler.HandleGet(w, withURLParams(httptest.NewRequest(http.MethodGet, "/api/users/u-2", nil), "id", "u-2"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.HandleGet(w, withURLParams(httptest.NewRequest(http.MethodGet, "/api/users/junk", nil), "id", "junk"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleList_InternalError(t *testing.T) {
	svc := new(MockUserService)
	svc.On("ListUsers", mock.Anything).Return(nil, errors.New("connection refused"))

	w := httptest.NewRecorder()
	NewUsersHandler(svc).HandleList(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleUpdate(t *testing.T) {
	svc := new(MockUserService)
	handler := NewUsersHandler(svc)

	svc.On("UpdateUser", mock.Anything, "u-1", mock.MatchedBy(func(req users.UpdateUserRequest) bool {
		return req.Username != nil && *req.Username == "bob" && req.Email == nil
	})).Return(&users.User{ID: "u-1", Username: "bob"}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/api/users/u-1", bytes.NewBufferString(`{"username":"bob"}`))
	handler.HandleUpdate(w, withURLParams(r, "id", "u-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleDelete(t *testing.T) {
	svc := new(MockUserService)
	handler := NewUsersHandler(svc)

	svc.On("DeleteUser", mock.Anything, "u-1").Return(nil)
	svc.On("DeleteUser", mock.Anything, "u-2").Return(users.ErrUserNotFound)

	w := httptest.NewRecorder()
	handler.HandleDelete(w, withURLParams(httptest.NewRequest(http.MethodDelete, "/api/users/u-1", nil), "id", "u-1"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User, channels, and videos deleted successfully", resp["message"])

	w = httptest.NewRecorder()
	handler.HandleDelete(w, withURLParams(httptest.NewRequest(http.MethodDelete, "/api/users/u-2", nil), "id", "u-2"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAddFavorite(t *testing.T) {
	svc := new(MockUserService)
	svc.On("AddFavorite", mock.Anything, "u-1", "v-1").
		Return(&users.User{ID: "u-1", FavoriteVideos: []string{"v-1"}}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/users/u-1/favorite/v-1", nil)
	NewUsersHandler(svc).HandleAddFavorite(w, withURLParams(r, "id", "u-1", "videoId", "v-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favoriteVideos":["v-1"]`)
}
