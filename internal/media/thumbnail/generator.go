package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidSize is returned when the requested thumbnail has a non-positive dimension
	ErrInvalidSize = errors.New("thumbnail width and height must be positive")

	// ErrProcessingFailed is returned when the extracted frame cannot be decoded or encoded
	ErrProcessingFailed = errors.New("thumbnail processing failed")
)

const defaultQuality = 85

// FrameExtractor writes one frame of a video to an image file
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, videoPath, outPath string, offset time.Duration) error
}

// Generator produces fixed-size JPEG thumbnails: a frame is grabbed at full
// resolution, then scaled and center-cropped to exactly fill the target box.
type Generator struct {
	frames  FrameExtractor
	quality int
}

// NewGenerator creates a thumbnail generator
func NewGenerator(frames FrameExtractor) *Generator {
	return &Generator{frames: frames, quality: defaultQuality}
}

// Generate writes a width x height JPEG of the frame at offset to outPath
func (g *Generator) Generate(ctx context.Context, videoPath, outPath string, offset time.Duration, width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}

	framePath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".frame.png"
	defer os.Remove(framePath)

	if err := g.frames.ExtractFrame(ctx, videoPath, framePath, offset); err != nil {
		return fmt.Errorf("failed to extract frame: %w", err)
	}

	frame, err := imaging.Open(framePath)
	if err != nil {
		return fmt.Errorf("%w: failed to decode frame: %w", ErrProcessingFailed, err)
	}

	if err := imaging.Save(Fill(frame, width, height), outPath, imaging.JPEGQuality(g.quality)); err != nil {
		return fmt.Errorf("%w: failed to encode JPEG: %w", ErrProcessingFailed, err)
	}
	return nil
}

// Fill scales img to cover width x height and crops the overflow evenly from both sides
func Fill(img image.Image, width, height int) image.Image {
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}
