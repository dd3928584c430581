package routes

import (
	"Theatrum/internal/api/handlers/user"
	"Theatrum/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers account endpoints under /api/users
func RegisterUserRoutes(r chi.Router, service users.UserService, guards Guards) {
	authHandler := user.NewAuthHandler(service)
	usersHandler := user.NewUsersHandler(service)

	r.Route("/api/users", func(r chi.Router) {
		// registration and login issue tokens, so they never require one
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)

		r.With(guards.Read).Get("/", usersHandler.HandleList)
		r.With(guards.Read).Get("/{id}", usersHandler.HandleGet)

		r.With(guards.Write).Put("/{id}", usersHandler.HandleUpdate)
		r.With(guards.Write).Delete("/{id}", usersHandler.HandleDelete)
		r.With(guards.Write).Post("/{id}/favorite/{videoId}", usersHandler.HandleAddFavorite)
	})
}
