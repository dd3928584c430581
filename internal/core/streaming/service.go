package streaming

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"

	lru "github.com/hashicorp/golang-lru/v2"

	"Theatrum/internal/storage"
)

// ObjectLocator finds stored videos by name and reads byte ranges of them
type ObjectLocator interface {
	Lookup(ctx context.Context, name string) (storage.ObjectInfo, error)
	OpenRange(ctx context.Context, objectID string, start, end int64) (io.ReadCloser, error)
}

// Config tunes the streaming service
type Config struct {
	ChunkSize int64
	CacheSize int // object lookups remembered; 0 disables the cache
}

// Chunk is one partial response. The caller must close Body.
type Chunk struct {
	Body        io.ReadCloser
	ContentType string
	ByteRange
}

// Service serves byte ranges of stored videos
type Service struct {
	locator   ObjectLocator
	lookups   *lru.Cache[string, storage.ObjectInfo]
	logger    *slog.Logger
	chunkSize int64
}

// NewService creates a streaming service
func NewService(locator ObjectLocator, cfg Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}

	s := &Service{locator: locator, chunkSize: cfg.ChunkSize, logger: logger}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, storage.ObjectInfo](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create lookup cache: %w", err)
		}
		s.lookups = cache
	}
	return s, nil
}

// Open resolves fileName and opens the range named by rangeHeader. The
// header is checked before any storage call.
func (s *Service) Open(ctx context.Context, fileName, rangeHeader string) (*Chunk, error) {
	if rangeHeader == "" {
		return nil, ErrRangeRequired
	}

	info, err := s.lookup(ctx, fileName)
	if err != nil {
		return nil, err
	}

	br, err := ParseRange(rangeHeader, info.Size, s.chunkSize)
	if err != nil {
		return nil, err
	}

	body, err := s.locator.OpenRange(ctx, info.ID, br.Start, br.End)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			// removed remotely since it was cached
			s.forget(fileName)
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open %s: %w", fileName, err)
	}

	return &Chunk{ByteRange: br, ContentType: contentType(fileName), Body: body}, nil
}

func (s *Service) lookup(ctx context.Context, fileName string) (storage.ObjectInfo, error) {
	if s.lookups != nil {
		if info, ok := s.lookups.Get(fileName); ok {
			return info, nil
		}
	}

	info, err := s.locator.Lookup(ctx, fileName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return storage.ObjectInfo{}, ErrFileNotFound
		}
		return storage.ObjectInfo{}, fmt.Errorf("failed to look up %s: %w", fileName, err)
	}

	if s.lookups != nil {
		s.lookups.Add(fileName, info)
	}
	s.logger.Debug("resolved stream object", "file", fileName, "object_id", info.ID, "size", info.Size)
	return info, nil
}

func (s *Service) forget(fileName string) {
	if s.lookups != nil {
		s.lookups.Remove(fileName)
	}
}

func contentType(fileName string) string {
	if ct := mime.TypeByExtension(path.Ext(fileName)); ct != "" {
		return ct
	}
	return "video/mp4"
}
