package routes

import (
	"Theatrum/internal/api/handlers/search"
	"Theatrum/internal/api/handlers/stream"
	"Theatrum/internal/api/handlers/upload"

	"github.com/go-chi/chi/v5"
)

// UploadOptions configures where uploads are staged and how large they may be
type UploadOptions struct {
	StageDir string
	MaxBytes int64
}

// RegisterUploadRoutes registers the multipart upload endpoint
func RegisterUploadRoutes(r chi.Router, runner upload.Runner, opts UploadOptions, guards Guards) {
	h := upload.NewHandler(runner, opts.StageDir, opts.MaxBytes)
	r.With(guards.Write).Post("/upload", h.HandleUpload)
}

// RegisterStreamRoutes registers ranged video playback. Players cannot send
// bearer tokens on media requests, so the route is always public.
func RegisterStreamRoutes(r chi.Router, opener stream.Opener) {
	h := stream.NewHandler(opener)
	r.Get("/stream-video/{fileName}", h.HandleStream)
	r.Head("/stream-video/{fileName}", h.HandleStream)
}

// RegisterSearchRoutes registers combined video and channel search
func RegisterSearchRoutes(r chi.Router, searcher search.Searcher) {
	h := search.NewHandler(searcher)
	r.Get("/api/search", h.HandleSearch)
}
