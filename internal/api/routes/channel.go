package routes

import (
	"Theatrum/internal/api/handlers/channel"
	"Theatrum/internal/core/channels"

	"github.com/go-chi/chi/v5"
)

// RegisterChannelRoutes registers channel endpoints under /api/channels
func RegisterChannelRoutes(r chi.Router, service channels.Service, guards Guards) {
	h := channel.NewChannelsHandler(service)

	r.Route("/api/channels", func(r chi.Router) {
		r.With(guards.Read).Get("/", h.HandleList)
		r.With(guards.Read).Get("/user/{userId}", h.HandleGetByOwner)
		r.With(guards.Read).Get("/{id}", h.HandleGet)

		r.With(guards.Write).Post("/", h.HandleCreate)
		r.With(guards.Write).Put("/{id}", h.HandleUpdate)
		r.With(guards.Write).Delete("/{id}", h.HandleDelete)
		r.With(guards.Write).Post("/{id}/subscribe", h.HandleSubscribe)
	})
}
