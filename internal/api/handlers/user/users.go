package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/users"
)

// UsersHandler serves the user resource
type UsersHandler struct {
	service users.UserService
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(service users.UserService) *UsersHandler {
	return &UsersHandler{service: service}
}

// HandleList returns every user
// GET /api/users
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, list)
}

// HandleGet returns one user
// GET /api/users/{id}
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, user)
}

// HandleUpdate changes username, email, profile picture or password
// PUT /api/users/{id}
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req users.UpdateUserRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	user, err := h.service.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, user)
}

// HandleDelete removes the user with their channels and those channels' videos
// DELETE /api/users/{id}
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User, channels, and videos deleted successfully",
	})
}

// HandleAddFavorite adds a video to the user's favorites
// POST /api/users/{id}/favorite/{videoId}
func (h *UsersHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.AddFavorite(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "videoId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, user)
}
