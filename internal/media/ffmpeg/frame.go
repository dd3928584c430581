package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FrameExtractor grabs single frames from a video with the ffmpeg binary
type FrameExtractor struct{}

// NewFrameExtractor creates a frame extractor
func NewFrameExtractor() *FrameExtractor {
	return &FrameExtractor{}
}

// ExtractFrame writes the frame at offset to outPath as a still image.
// The format follows outPath's extension. The ffmpeg process is killed
// if ctx ends first.
func (e *FrameExtractor) ExtractFrame(ctx context.Context, videoPath, outPath string, offset time.Duration) error {
	var stderr bytes.Buffer
	cmd := ffmpeg.Input(videoPath, ffmpeg.KwArgs{"ss": formatOffset(offset)}).
		Output(outPath, ffmpeg.KwArgs{"vframes": 1}).
		OverWriteOutput().
		WithErrorOutput(&stderr).
		Compile()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("ffmpeg frame grab: %w: %s", err, lastLine(stderr.Bytes()))
		}
		return nil
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

// formatOffset renders an offset as seconds with millisecond precision, as ffmpeg's -ss accepts
func formatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func lastLine(b []byte) string {
	b = bytes.TrimRight(b, "\n")
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	}
	return string(b)
}
