package routes

import (
	commentHandlers "Theatrum/internal/api/handlers/comments"
	"Theatrum/internal/api/handlers/video"
	"Theatrum/internal/core/comments"
	"Theatrum/internal/core/videos"

	"github.com/go-chi/chi/v5"
)

// RegisterVideoRoutes registers video, reaction and comment endpoints under /api/videos
func RegisterVideoRoutes(r chi.Router, videoService videos.Service, commentService comments.Service, guards Guards) {
	videosHandler := video.NewVideosHandler(videoService, commentService)
	reactionHandler := video.NewReactionHandler(videoService)
	commentsHandler := commentHandlers.NewCommentsHandler(commentService)

	r.Route("/api/videos", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(guards.Read)
			r.Get("/", videosHandler.HandleList)
			r.Get("/get/types", videosHandler.HandleListTypes)
			r.Get("/types/{type}", videosHandler.HandleListByType)
			r.Get("/{id}", videosHandler.HandleGet)
			r.Get("/{id}/comments", commentsHandler.HandleList)
		})

		r.Group(func(r chi.Router) {
			r.Use(guards.Write)
			r.Post("/", videosHandler.HandleCreate)
			r.Put("/{id}", videosHandler.HandleUpdate)
			r.Delete("/{id}", videosHandler.HandleDelete)
			r.Post("/{id}/like", reactionHandler.HandleLike)
			r.Post("/{id}/dislike", reactionHandler.HandleDislike)
			r.Post("/{id}/comment", commentsHandler.HandleCreate)
			r.Post("/{id}/comment/{commentId}/reply", commentsHandler.HandleReply)
		})
	})
}
