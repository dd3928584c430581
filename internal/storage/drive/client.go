package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"Theatrum/internal/storage"
)

// Config holds the Drive folder videos are written to and the credentials to do it
type Config struct {
	FolderID        string
	APIKey          string // appended to public streaming URLs
	CredentialsJSON string // service account key
}

// Client stores videos as files in one Google Drive folder
type Client struct {
	files    *drive.FilesService
	logger   *slog.Logger
	folderID string
	apiKey   string
}

// New creates a Drive client authenticated with the configured service account.
// Extra options are appended after the credentials, so tests can point the
// client at a fake endpoint.
func New(ctx context.Context, cfg Config, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if cfg.FolderID == "" {
		return nil, errors.New("drive folder id is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientOpts := []option.ClientOption{option.WithScopes(drive.DriveFileScope)}
	if cfg.CredentialsJSON != "" {
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{
		files:    svc.Files,
		folderID: cfg.FolderID,
		apiKey:   cfg.APIKey,
		logger:   logger,
	}, nil
}

// Upload creates a new file named name in the folder and returns its Drive id
func (c *Client) Upload(ctx context.Context, name, localPath, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	created, err := c.files.Create(&drive.File{
		Name:     name,
		Parents:  []string{c.folderID},
		MimeType: contentType,
	}).
		Media(f, googleapi.ContentType(contentType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload %s: %w", name, err)
	}

	c.logger.Info("uploaded video to drive", "name", name, "file_id", created.Id)
	return created.Id, nil
}

// StreamingURL is the public media URL for a Drive file
func (c *Client) StreamingURL(objectID string) string {
	q := url.Values{}
	q.Set("alt", "media")
	q.Set("key", c.apiKey)
	return "https://www.googleapis.com/drive/v3/files/" + url.PathEscape(objectID) + "?" + q.Encode()
}

// Lookup finds a file in the folder by exact name
func (c *Client) Lookup(ctx context.Context, name string) (storage.ObjectInfo, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", escapeQuery(name), escapeQuery(c.folderID))
	list, err := c.files.List().
		Q(q).
		Fields("files(id, size)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("drive lookup %s: %w", name, err)
	}
	if len(list.Files) == 0 {
		return storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return storage.ObjectInfo{ID: list.Files[0].Id, Size: list.Files[0].Size}, nil
}

// OpenRange streams bytes start..end (inclusive) of a file
func (c *Client) OpenRange(ctx context.Context, objectID string, start, end int64) (io.ReadCloser, error) {
	call := c.files.Get(objectID).Context(ctx)
	call.Header().Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))

	resp, err := call.Download()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, storage.ErrObjectNotFound
		}
		return nil, fmt.Errorf("drive download %s: %w", objectID, err)
	}
	return resp.Body, nil
}

// escapeQuery escapes a literal for the Drive query language
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
