package routes

import (
	"net/http"

	"Theatrum/internal/api/middleware"
)

// Guards holds the middleware applied to read and write endpoints
type Guards struct {
	Read  func(http.Handler) http.Handler
	Write func(http.Handler) http.Handler
}

// NewGuards resolves bearer tokens everywhere. Writes demand one only when
// requireForWrites is set; otherwise request bodies name the acting user.
func NewGuards(auth *middleware.Authenticator, requireForWrites bool) Guards {
	g := Guards{Read: auth.OptionalAuth, Write: auth.OptionalAuth}
	if requireForWrites {
		g.Write = auth.RequireAuth
	}
	return g
}
