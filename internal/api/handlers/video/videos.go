package video

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/comments"
	"Theatrum/internal/core/videos"
)

// videoWithComments is the single-video response: the document plus its thread
type videoWithComments struct {
	*videos.Video
	Comments []*comments.Node `json:"comments"`
}

// VideosHandler serves the video resource
type VideosHandler struct {
	service  videos.Service
	comments comments.Service
}

// NewVideosHandler creates a new videos handler
func NewVideosHandler(service videos.Service, commentService comments.Service) *VideosHandler {
	return &VideosHandler{service: service, comments: commentService}
}

// HandleCreate stores a video document whose assets are already hosted
// POST /api/videos
func (h *VideosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req videos.CreateVideoRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	video, err := h.service.CreateVideo(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, video)
}

// HandleList returns every video with its channel summary
// GET /api/videos
func (h *VideosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListVideos(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, list)
}

// HandleGet returns one video with its comment thread and counts the view
// GET /api/videos/{id}
func (h *VideosHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	video, err := h.service.GetVideo(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	tree, err := h.comments.ListComments(r.Context(), id)
	if err != nil && !errors.Is(err, comments.ErrVideoNotFound) {
		handleServiceError(w, err)
		return
	}
	if tree == nil {
		tree = []*comments.Node{}
	}
	handlers.WriteJSON(w, http.StatusOK, videoWithComments{Video: video, Comments: tree})
}

// HandleUpdate edits title, description, thumbnail, type or tags
// PUT /api/videos/{id}
func (h *VideosHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req videos.UpdateVideoRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	video, err := h.service.UpdateVideo(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, video)
}

// HandleDelete removes a video and every reference to it
// DELETE /api/videos/{id}
func (h *VideosHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVideo(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Video deleted successfully"})
}

// HandleListTypes returns the categories in use
// GET /api/videos/get/types
func (h *VideosHandler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, types)
}

// HandleListByType returns the videos of one category
// GET /api/videos/types/{type}
func (h *VideosHandler) HandleListByType(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, list)
}
