package streaming

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Theatrum/internal/storage"
)

type fakeLocator struct {
	objects map[string]string // name -> content
	lookups int
	opened  [][2]int64
	openErr error
}

func (f *fakeLocator) Lookup(_ context.Context, name string) (storage.ObjectInfo, error) {
	f.lookups++
	content, ok := f.objects[name]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return storage.ObjectInfo{ID: "id-" + name, Size: int64(len(content))}, nil
}

func (f *fakeLocator) OpenRange(_ context.Context, objectID string, start, end int64) (io.ReadCloser, error) {
	f.opened = append(f.opened, [2]int64{start, end})
	if f.openErr != nil {
		return nil, f.openErr
	}
	content := f.objects[strings.TrimPrefix(objectID, "id-")]
	return io.NopCloser(strings.NewReader(content[start : end+1])), nil
}

func TestOpen(t *testing.T) {
	locator := &fakeLocator{objects: map[string]string{"clip.mp4": "0123456789"}}
	svc, err := NewService(locator, Config{ChunkSize: 4, CacheSize: 8}, nil)
	require.NoError(t, err)

	chunk, err := svc.Open(context.Background(), "clip.mp4", "bytes=2-")
	require.NoError(t, err)
	defer chunk.Body.Close()

	data, err := io.ReadAll(chunk.Body)
	require.NoError(t, err)
	assert.Equal(t, "23456", string(data))
	assert.Equal(t, "bytes 2-6/10", chunk.ContentRange())
	assert.Equal(t, "video/mp4", chunk.ContentType)
}

func TestOpen_RangeCheckedBeforeLookup(t *testing.T) {
	locator := &fakeLocator{objects: map[string]string{}}
	svc, err := NewService(locator, Config{}, nil)
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), "clip.mp4", "")
	assert.ErrorIs(t, err, ErrRangeRequired)
	assert.Zero(t, locator.lookups)
}

func TestOpen_NotFound(t *testing.T) {
	locator := &fakeLocator{objects: map[string]string{}}
	svc, err := NewService(locator, Config{}, nil)
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), "missing.mp4", "bytes=0-")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestOpen_CachesLookups(t *testing.T) {
	locator := &fakeLocator{objects: map[string]string{"clip.mp4": "0123456789"}}
	svc, err := NewService(locator, Config{CacheSize: 8}, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		chunk, err := svc.Open(context.Background(), "clip.mp4", "bytes=0-")
		require.NoError(t, err)
		chunk.Body.Close()
	}
	assert.Equal(t, 1, locator.lookups)

	// a vanished object is evicted and reported as missing
	locator.openErr = storage.ErrObjectNotFound
	_, err = svc.Open(context.Background(), "clip.mp4", "bytes=0-")
	assert.ErrorIs(t, err, ErrFileNotFound)

	locator.openErr = nil
	chunk, err := svc.Open(context.Background(), "clip.mp4", "bytes=0-")
	require.NoError(t, err)
	chunk.Body.Close()
	assert.Equal(t, 2, locator.lookups)
}

func TestOpen_StorageFailure(t *testing.T) {
	locator := &fakeLocator{
		objects: map[string]string{"clip.mp4": "0123456789"},
		openErr: errors.New("backend down"),
	}
	svc, err := NewService(locator, Config{}, nil)
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), "clip.mp4", "bytes=0-")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFileNotFound)
	assert.False(t, IsRangeError(err))
}
