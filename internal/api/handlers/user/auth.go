package user

import (
	"net/http"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/users"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	service users.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service users.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// HandleRegister creates an account
// POST /api/users/register
// Response: 201 { "user": {...}, "token": "..." }
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, resp)
}

// HandleLogin exchanges credentials for a token
// POST /api/users/login
// Response: 200 { "token": "...", "user": {...} }
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "email and password are required")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}
