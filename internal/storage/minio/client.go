package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"Theatrum/internal/storage"
)

// Config describes an S3-compatible bucket
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string // base for streaming URLs; defaults to the endpoint
	UseSSL    bool
}

// Client stores videos as objects in a MinIO bucket
type Client struct {
	client    *minio.Client
	logger    *slog.Logger
	bucket    string
	publicURL string
}

// New creates a MinIO client. It does not contact the server.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("minio endpoint and bucket are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &Client{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
		logger:    logger,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", c.bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}
	c.logger.Info("created bucket", "bucket", c.bucket)
	return nil
}

// Upload stores the local file under name. The object key doubles as its id.
func (c *Client) Upload(ctx context.Context, name, localPath, contentType string) (string, error) {
	info, err := c.client.FPutObject(ctx, c.bucket, name, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio upload %s: %w", name, err)
	}
	c.logger.Info("uploaded video to minio", "key", info.Key, "size", info.Size)
	return info.Key, nil
}

// StreamingURL is the public URL of an object
func (c *Client) StreamingURL(objectID string) string {
	return objectURL(c.publicURL, c.bucket, objectID)
}

// Lookup stats an object by key
func (c *Client) Lookup(ctx context.Context, name string) (storage.ObjectInfo, error) {
	info, err := c.client.StatObject(ctx, c.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return storage.ObjectInfo{}, storage.ErrObjectNotFound
		}
		return storage.ObjectInfo{}, fmt.Errorf("minio stat %s: %w", name, err)
	}
	return storage.ObjectInfo{ID: info.Key, Size: info.Size}, nil
}

// OpenRange streams bytes start..end (inclusive) of an object
func (c *Client) OpenRange(ctx context.Context, objectID string, start, end int64) (io.ReadCloser, error) {
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(start, end); err != nil {
		return nil, fmt.Errorf("invalid range %d-%d: %w", start, end, err)
	}

	obj, err := c.client.GetObject(ctx, c.bucket, objectID, opts)
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, fmt.Errorf("minio get %s: %w", objectID, err)
	}
	return obj, nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}

func publicBase(cfg Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

func objectURL(base, bucket, key string) string {
	return base + "/" + url.PathEscape(bucket) + "/" + url.PathEscape(key)
}
