package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"Theatrum/internal/core/videos"
)

// ErrNoVideoStream is returned when the probed file has no video track
var ErrNoVideoStream = errors.New("no video stream found")

const defaultProbeTimeout = 30 * time.Second

// probeOutput is the subset of `ffprobe -show_format -show_streams -of json` we read
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Duration  string `json:"duration"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Prober reads video metadata by shelling out to ffprobe
type Prober struct {
	timeout time.Duration
}

// NewProber creates a prober. A zero timeout falls back to 30 seconds.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Prober{timeout: timeout}
}

// Probe returns rounded duration, resolution and codec of the file at path
func (p *Prober) Probe(ctx context.Context, path string) (videos.Metadata, error) {
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return videos.Metadata{}, context.DeadlineExceeded
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
	if err != nil {
		return videos.Metadata{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return ParseProbeOutput([]byte(out))
}

// ParseProbeOutput extracts metadata from ffprobe's JSON output.
// Duration comes from the container and falls back to the video stream.
func ParseProbeOutput(data []byte) (videos.Metadata, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return videos.Metadata{}, fmt.Errorf("failed to decode ffprobe output: %w", err)
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}

		raw := out.Format.Duration
		if raw == "" {
			raw = s.Duration
		}
		seconds, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return videos.Metadata{}, fmt.Errorf("invalid duration %q: %w", raw, err)
		}

		return videos.Metadata{
			Duration:   int(math.Round(seconds)),
			Resolution: fmt.Sprintf("%dx%d", s.Width, s.Height),
			Codec:      s.CodecName,
		}, nil
	}
	return videos.Metadata{}, ErrNoVideoStream
}
