package stream

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/streaming"
)

// Opener resolves a file name and range header to one chunk of the object
type Opener interface {
	Open(ctx context.Context, fileName, rangeHeader string) (*streaming.Chunk, error)
}

// Handler serves partial video content
type Handler struct {
	opener Opener
}

// NewHandler creates a new stream handler
func NewHandler(opener Opener) *Handler {
	return &Handler{opener: opener}
}

// HandleStream serves one chunk of a stored video
// GET /stream-video/{fileName}
// Requires a Range header; responds 206 with Content-Range
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	chunk, err := h.opener.Open(r.Context(), chi.URLParam(r, "fileName"), r.Header.Get("Range"))
	if err != nil {
		handleStreamError(w, err)
		return
	}
	defer func() {
		if cerr := chunk.Body.Close(); cerr != nil {
			log.Printf("Failed to close stream body: %v", cerr)
		}
	}()

	w.Header().Set("Content-Range", chunk.ContentRange())
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.FormatInt(chunk.Length(), 10))
	w.Header().Set("Content-Type", chunk.ContentType)
	w.WriteHeader(http.StatusPartialContent)

	if r.Method == http.MethodHead {
		return
	}
	// Headers are out; a copy failure can only be logged
	if _, err := io.CopyN(w, chunk.Body, chunk.Length()); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Stream copy interrupted: %v", err)
	}
}

func handleStreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, streaming.ErrRangeRequired):
		handlers.WriteError(w, http.StatusRequestedRangeNotSatisfiable, "RangeRequired", "Requires Range header")
	case streaming.IsRangeError(err):
		handlers.WriteError(w, http.StatusRequestedRangeNotSatisfiable, "RangeNotSatisfiable", err.Error())
	case errors.Is(err, streaming.ErrFileNotFound):
		handlers.WriteError(w, http.StatusNotFound, "File not found", "File not found")
	default:
		log.Printf("Stream handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "Failed to stream video", "Failed to stream video")
	}
}
