package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"Theatrum/internal/api/handlers"
	"Theatrum/internal/api/middleware"
	"Theatrum/internal/core/uploads"
	"Theatrum/internal/core/videos"
)

// multipartMemory is how much of a form is buffered in memory before spilling to disk
const multipartMemory = 32 << 20

// Runner executes the upload pipeline
type Runner interface {
	Run(ctx context.Context, req uploads.Request) (*videos.Video, error)
}

// Handler accepts multipart video uploads
type Handler struct {
	runner   Runner
	stageDir string
	maxBytes int64
}

// NewHandler creates an upload handler that stages files under stageDir
func NewHandler(runner Runner, stageDir string, maxBytes int64) *Handler {
	return &Handler{runner: runner, stageDir: stageDir, maxBytes: maxBytes}
}

// HandleUpload stages the "video" file and runs the pipeline synchronously
// POST /upload
// Form: video (file), title, description, channelId, uploaderId, type, tags
// Response: 201 with the stored video
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "PayloadTooLarge", "Upload exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Expected a multipart form")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Printf("Failed to remove multipart temp files: %v", err)
		}
	}()

	req := uploads.Request{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ChannelID:   r.FormValue("channelId"),
		UploaderID:  r.FormValue("uploaderId"),
		Type:        r.FormValue("type"),
		Tags:        parseTags(r.MultipartForm.Value["tags"]),
	}
	if req.UploaderID == "" {
		req.UploaderID = middleware.GetUserID(r)
	}

	file, header, err := r.FormFile("video")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// The pipeline reports the missing file alongside any missing fields.
	case err != nil:
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Could not read the video file")
		return
	default:
		staged, serr := h.stage(file)
		_ = file.Close()
		if serr != nil {
			log.Printf("Failed to stage upload: %v", serr)
			writeError(w, http.StatusInternalServerError, "InternalServerError", "Failed to store upload")
			return
		}
		req.StagedPath = staged
		req.OriginalName = header.Filename
		req.ContentType = header.Header.Get("Content-Type")
	}

	video, err := h.runner.Run(r.Context(), req)
	if err != nil {
		handleRunError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, video)
}

// stage copies the uploaded part into the staging directory. The pipeline
// owns the file afterwards and removes it on every exit path.
func (h *Handler) stage(src io.Reader) (string, error) {
	if err := os.MkdirAll(h.stageDir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.CreateTemp(h.stageDir, "upload-*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("copy upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	return filepath.Clean(dst.Name()), nil
}

// parseTags accepts repeated fields and comma-separated lists
func parseTags(values []string) []string {
	tags := []string{}
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}
