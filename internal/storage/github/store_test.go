package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo serves the contents endpoints for one repository
type fakeRepo struct {
	files   map[string]string // path -> sha
	commits []map[string]any
	mu      sync.Mutex
}

func (f *fakeRepo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	const prefix = "/repos/acme/media/contents/"
	if len(r.URL.Path) <= len(prefix) || r.URL.Path[:len(prefix)] != prefix {
		http.NotFound(w, r)
		return
	}
	path := r.URL.Path[len(prefix):]

	switch r.Method {
	case http.MethodGet:
		sha, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"type": "file", "path": path, "sha": sha})
	case http.MethodPut:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		body["path"] = path
		f.commits = append(f.commits, body)
		f.files[path] = "sha-new"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"content": map[string]any{"path": path, "sha": "sha-new"}})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T, repo *fakeRepo) *Store {
	t.Helper()
	srv := httptest.NewServer(repo)
	t.Cleanup(srv.Close)

	client := github.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	store, err := NewWithClient(client, Config{Owner: "acme", Repo: "media"}, nil)
	require.NoError(t, err)
	return store
}

func TestPut_CreatesNewFile(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{}}
	store := newTestStore(t, repo)

	url, err := store.Put(context.Background(), "thumbnails/v1.jpg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "https://raw.githubusercontent.com/acme/media/main/thumbnails/v1.jpg", url)

	require.Len(t, repo.commits, 1)
	commit := repo.commits[0]
	assert.Equal(t, "Upload thumbnails/v1.jpg", commit["message"])
	assert.Equal(t, "main", commit["branch"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("jpeg")), commit["content"])
	assert.NotContains(t, commit, "sha")
}

func TestPut_ReplacesExistingFile(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{"thumbnails/v1.jpg": "sha-old"}}
	store := newTestStore(t, repo)

	_, err := store.Put(context.Background(), "/thumbnails/v1.jpg", []byte("jpeg2"))
	require.NoError(t, err)

	require.Len(t, repo.commits, 1)
	assert.Equal(t, "sha-old", repo.commits[0]["sha"])
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Owner: "acme", Repo: "media"}, nil)
	assert.Error(t, err)

	_, err = NewWithClient(github.NewClient(nil), Config{Owner: "acme"}, nil)
	assert.Error(t, err)
}
