package search

import (
	"context"
	"errors"
	"log"
	"net/http"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/core/search"
)

// Searcher runs a combined video and channel search
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Results, error)
}

// Handler serves the search endpoint
type Handler struct {
	searcher Searcher
}

// NewHandler creates a new search handler
func NewHandler(searcher Searcher) *Handler {
	return &Handler{searcher: searcher}
}

// HandleSearch matches video titles and channel names
// GET /api/search?q=...
// Response: { "videos": [...], "channels": [...] }
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := h.searcher.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, search.ErrQueryRequired) {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Search query is required")
			return
		}
		log.Printf("Search handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, results)
}
