package comments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Theatrum/internal/api/middleware"
	"Theatrum/internal/core/comments"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleThread() []*comments.Node {
	return []*comments.Node{{
		Comment: comments.Comment{ID: "c-1", Text: "first"},
		Replies: []*comments.Node{{Comment: comments.Comment{ID: "c-2", Text: "reply"}, Replies: []*comments.Node{}}},
	}}
}

func TestHandleList(t *testing.T) {
	svc := new(MockCommentService)
	handler := NewCommentsHandler(svc)

	svc.On("ListComments", mock.Anything, "v-1").Return(sampleThread(), nil)
	svc.On("ListComments", mock.Anything, "v-9").Return(nil, comments.ErrVideoNotFound)

	w := httptest.NewRecorder()
	handler.HandleList(w, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "v-1"))
	require.Equal(t, http.StatusOK, w.Code)

	var tree []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tree))
	require.Len(t, tree, 1)
	assert.Len(t, tree[0]["replies"], 1)

	w = httptest.NewRecorder()
	handler.HandleList(w, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "v-9"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleCreate(t *testing.T) {
	svc := new(MockCommentService)
	handler := NewCommentsHandler(svc)

	req := comments.CreateCommentRequest{UserID: "u-1", Username: "alice", Text: "first"}
	svc.On("AppendTopLevelComment", mock.Anything, "v-1", req).Return(&comments.Comment{ID: "c-1", Text: "first"}, nil)
	svc.On("ListComments", mock.Anything, "v-1").Return(sampleThread(), nil)

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	handler.HandleCreate(w, withURLParams(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)), "id", "v-1"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Comment added successfully", resp["message"])
	assert.Len(t, resp["comments"], 1)
}

func TestHandleCreate_AuthorFromToken(t *testing.T) {
	svc := new(MockCommentService)
	svc.On("AppendTopLevelComment", mock.Anything, "v-1", mock.MatchedBy(func(req comments.CreateCommentRequest) bool {
		return req.UserID == "u-7"
	})).Return(&comments.Comment{ID: "c-1"}, nil)
	svc.On("ListComments", mock.Anything, "v-1").Return([]*comments.Node{}, nil)

	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"text":"hi"}`))
	r = withURLParams(r, "id", "v-1")
	r = r.WithContext(middleware.SetTestUserID(r.Context(), "u-7"))

	w := httptest.NewRecorder()
	NewCommentsHandler(svc).HandleCreate(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleCreate_EmptyText(t *testing.T) {
	svc := new(MockCommentService)
	svc.On("AppendTopLevelComment", mock.Anything, "v-1", mock.Anything).Return(nil, comments.ErrContentEmpty)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"userId":"u-1","text":""}`))
	NewCommentsHandler(svc).HandleCreate(w, withURLParams(r, "id", "v-1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleReply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockCommentService)
		svc.On("AppendReply", mock.Anything, "v-1", "c-1", mock.Anything).Return(&comments.Comment{ID: "c-2", Text: "reply"}, nil)
		svc.On("ListComments", mock.Anything, "v-1").Return(sampleThread(), nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"userId":"u-1","username":"bob","text":"reply"}`))
		NewCommentsHandler(svc).HandleReply(w, withURLParams(r, "id", "v-1", "commentId", "c-1"))
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Reply added successfully", resp["message"])
		assert.Equal(t, "c-2", resp["comment"].(map[string]interface{})["id"])
	})

	t.Run("parent missing", func(t *testing.T) {
		svc := new(MockCommentService)
		svc.On("AppendReply", mock.Anything, "v-1", "c-404", mock.Anything).Return(nil, comments.ErrParentNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"userId":"u-1","text":"reply"}`))
		NewCommentsHandler(svc).HandleReply(w, withURLParams(r, "id", "v-1", "commentId", "c-404"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Parent comment not found")
		svc.AssertNotCalled(t, "ListComments", mock.Anything, mock.Anything)
	})
}
