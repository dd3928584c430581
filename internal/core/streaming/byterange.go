package streaming

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultChunkSize caps how much of a file one response carries
const DefaultChunkSize int64 = 1_000_000

// ByteRange is an inclusive slice of a file of Size bytes
type ByteRange struct {
	Start int64
	End   int64
	Size  int64
}

// Length is the number of bytes in the range
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange formats the range for the Content-Range response header
func (r ByteRange) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, r.Size)
}

// ParseRange resolves a "bytes=start-[end]" header against a file of size
// bytes. The end is clamped to start+chunk and to the last byte of the file,
// so a player asking for "bytes=0-" gets the first chunk only.
func ParseRange(header string, size, chunk int64) (ByteRange, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return ByteRange{}, ErrRangeRequired
	}
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	rangeSet, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return ByteRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, header)
	}
	// only the first range of a multi-range request is served
	rangeSet, _, _ = strings.Cut(rangeSet, ",")

	startStr, endStr, ok := strings.Cut(strings.TrimSpace(rangeSet), "-")
	if !ok || startStr == "" {
		return ByteRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, header)
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, header)
	}
	if start >= size {
		return ByteRange{}, fmt.Errorf("%w: start %d, size %d", ErrRangeNotSatisfiable, start, size)
	}

	end := min(start+chunk, size-1)
	if endStr != "" {
		requested, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || requested < start {
			return ByteRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, header)
		}
		end = min(end, requested)
	}

	return ByteRange{Start: start, End: end, Size: size}, nil
}
