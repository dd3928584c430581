package comments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/api/middleware"
	"Theatrum/internal/core/comments"
)

// maxCommentBodyBytes bounds comment request bodies
const maxCommentBodyBytes = 100 * 1024

// CommentsHandler serves a video's comment thread
type CommentsHandler struct {
	service comments.Service
}

// NewCommentsHandler creates a new comments handler
func NewCommentsHandler(service comments.Service) *CommentsHandler {
	return &CommentsHandler{service: service}
}

// threadResponse is returned after a write: the new node and the whole thread
type threadResponse struct {
	Comment  *comments.Comment `json:"comment"`
	Message  string            `json:"message"`
	Comments []*comments.Node  `json:"comments"`
}

// HandleList returns the nested thread
// GET /api/videos/{id}/comments
func (h *CommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, tree)
}

// HandleCreate appends a top-level comment
// POST /api/videos/{id}/comment
// Body: { "userId": "...", "username": "...", "text": "..." }
func (h *CommentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCommentRequest(w, r)
	if !ok {
		return
	}

	videoID := chi.URLParam(r, "id")
	comment, err := h.service.AppendTopLevelComment(r.Context(), videoID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.writeThread(w, r, videoID, comment, "Comment added successfully")
}

// HandleReply appends a reply under any comment of the thread
// POST /api/videos/{id}/comment/{commentId}/reply
func (h *CommentsHandler) HandleReply(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCommentRequest(w, r)
	if !ok {
		return
	}

	videoID := chi.URLParam(r, "id")
	reply, err := h.service.AppendReply(r.Context(), videoID, chi.URLParam(r, "commentId"), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.writeThread(w, r, videoID, reply, "Reply added successfully")
}

func (h *CommentsHandler) writeThread(w http.ResponseWriter, r *http.Request, videoID string, c *comments.Comment, message string) {
	tree, err := h.service.ListComments(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, threadResponse{Message: message, Comment: c, Comments: tree})
}

func decodeCommentRequest(w http.ResponseWriter, r *http.Request) (comments.CreateCommentRequest, bool) {
	var req comments.CreateCommentRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxCommentBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return req, false
	}
	if req.UserID == "" {
		req.UserID = middleware.GetUserID(r)
	}
	return req, true
}
