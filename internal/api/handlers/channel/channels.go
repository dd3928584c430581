package channel

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/api/middleware"
	"Theatrum/internal/core/channels"
)

// ChannelsHandler serves the channel resource
type ChannelsHandler struct {
	service channels.Service
}

// NewChannelsHandler creates a new channels handler
func NewChannelsHandler(service channels.Service) *ChannelsHandler {
	return &ChannelsHandler{service: service}
}

// HandleCreate creates a channel
// POST /api/channels
// Body: { "name": "...", "description": "...", "owner": "<userId>", "logo": "...", "banner": "..." }
func (h *ChannelsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req channels.CreateChannelRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Owner == "" {
		req.Owner = middleware.GetUserID(r)
	}

	channel, err := h.service.CreateChannel(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, channel)
}

// HandleList returns every channel
// GET /api/channels
func (h *ChannelsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListChannels(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, list)
}

// HandleGet returns one channel
// GET /api/channels/{id}
func (h *ChannelsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	channel, err := h.service.GetChannel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, channel)
}

// HandleGetByOwner returns the user's channel with its videos populated
// GET /api/channels/user/{userId}
func (h *ChannelsHandler) HandleGetByOwner(w http.ResponseWriter, r *http.Request) {
	channel, err := h.service.GetChannelByOwner(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, channel)
}

// HandleUpdate edits name, description, logo or banner
// PUT /api/channels/{id}
func (h *ChannelsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req channels.UpdateChannelRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	channel, err := h.service.UpdateChannel(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, channel)
}

// HandleDelete removes a channel
// DELETE /api/channels/{id}
func (h *ChannelsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteChannel(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Channel deleted"})
}

// HandleSubscribe toggles the caller's subscription and returns the channel
// POST /api/channels/{id}/subscribe
// Body: { "userId": "..." }
func (h *ChannelsHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req channels.SubscribeRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.UserID == "" {
		req.UserID = middleware.GetUserID(r)
	}

	result, err := h.service.ToggleSubscription(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	w.Header().Set("X-Subscribed", strconv.FormatBool(result.Subscribed))
	handlers.WriteJSON(w, http.StatusOK, result.Channel)
}
