package video

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/api/middleware"
	"Theatrum/internal/core/videos"
)

// ReactionHandler toggles likes and dislikes
type ReactionHandler struct {
	service videos.Service
}

// NewReactionHandler creates a new reaction handler
func NewReactionHandler(service videos.Service) *ReactionHandler {
	return &ReactionHandler{service: service}
}

// HandleLike toggles the caller's like
// POST /api/videos/{id}/like
// Body: { "userId": "..." }
func (h *ReactionHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.Like)
}

// HandleDislike toggles the caller's dislike
// POST /api/videos/{id}/dislike
func (h *ReactionHandler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.Dislike)
}

func (h *ReactionHandler) react(w http.ResponseWriter, r *http.Request, toggle func(ctx context.Context, videoID, userID string) (*videos.Video, error)) {
	var req videos.ReactionRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	// A bearer token stands in for a missing body userId
	if req.UserID == "" {
		req.UserID = middleware.GetUserID(r)
	}

	video, err := toggle(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, video)
}
