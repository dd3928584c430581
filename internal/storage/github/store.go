package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v68/github"
)

// Config names the repository thumbnails are committed to
type Config struct {
	Owner  string
	Repo   string
	Branch string
	Token  string
}

// Store commits files to a GitHub repository and serves them from raw.githubusercontent.com
type Store struct {
	repos   *github.RepositoriesService
	logger  *slog.Logger
	rawBase string
	cfg     Config
}

// New creates a Store authenticated with a personal access token
func New(cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Token == "" {
		return nil, errors.New("github token is required")
	}
	return NewWithClient(github.NewClient(nil).WithAuthToken(cfg.Token), cfg, logger)
}

// NewWithClient creates a Store on top of an existing client
func NewWithClient(client *github.Client, cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, errors.New("github owner and repo are required")
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		repos:   client.Repositories,
		cfg:     cfg,
		rawBase: "https://raw.githubusercontent.com",
		logger:  logger,
	}, nil
}

// Put creates or replaces the file at path and returns its raw URL
func (s *Store) Put(ctx context.Context, path string, content []byte) (string, error) {
	path = strings.TrimLeft(path, "/")

	sha, err := s.currentSHA(ctx, path)
	if err != nil {
		return "", err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr("Upload " + path),
		Content: content,
		Branch:  github.Ptr(s.cfg.Branch),
	}
	if sha != "" {
		opts.SHA = github.Ptr(sha)
		_, _, err = s.repos.UpdateFile(ctx, s.cfg.Owner, s.cfg.Repo, path, opts)
	} else {
		_, _, err = s.repos.CreateFile(ctx, s.cfg.Owner, s.cfg.Repo, path, opts)
	}
	if err != nil {
		return "", fmt.Errorf("github commit %s: %w", path, err)
	}

	s.logger.Info("committed file to github", "path", path, "replaced", sha != "")
	return s.RawURL(path), nil
}

// RawURL is where a committed file can be fetched
func (s *Store) RawURL(path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", s.rawBase, s.cfg.Owner, s.cfg.Repo, s.cfg.Branch, strings.TrimLeft(path, "/"))
}

// currentSHA returns the blob sha of an existing file, or "" when there is none
func (s *Store) currentSHA(ctx context.Context, path string) (string, error) {
	file, _, resp, err := s.repos.GetContents(ctx, s.cfg.Owner, s.cfg.Repo, path, &github.RepositoryContentGetOptions{
		Ref: s.cfg.Branch,
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("github lookup %s: %w", path, err)
	}
	if file == nil {
		return "", fmt.Errorf("github lookup %s: path is a directory", path)
	}
	return file.GetSHA(), nil
}
