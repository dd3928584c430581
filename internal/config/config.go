// Package config loads server settings from the environment.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

// Object store backends
const (
	BackendDrive = "drive"
	BackendMinio = "minio"
)

type HTTP struct {
	Port            string        `env:"PORT" envDefault:"8000"`
	ClientURL       string        `env:"CLIENT_URL" envDefault:"http://localhost:3000"`
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES" envDefault:"2147483648"`
	RateLimit       int           `env:"RATE_LIMIT_REQUESTS" envDefault:"300"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

type Database struct {
	URL string `env:"DATABASE_URL,required,notEmpty"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	// RequireForWrites rejects mutating requests that carry no valid bearer token
	RequireForWrites bool `env:"REQUIRE_AUTH_FOR_WRITES" envDefault:"false"`
}

type Upload struct {
	Dir             string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	ThumbnailDir    string        `env:"THUMBNAIL_DIR" envDefault:"uploads/thumbnails"`
	ThumbnailOffset time.Duration `env:"THUMBNAIL_OFFSET" envDefault:"1s"`
	ThumbnailWidth  int           `env:"THUMBNAIL_WIDTH" envDefault:"320"`
	ThumbnailHeight int           `env:"THUMBNAIL_HEIGHT" envDefault:"180"`
	PipelineTimeout time.Duration `env:"PIPELINE_TIMEOUT" envDefault:"10m"`
	ProbeTimeout    time.Duration `env:"PROBE_TIMEOUT" envDefault:"30s"`
}

type Drive struct {
	FolderID string `env:"DRIVE_FOLDER_ID"`
	APIKey   string `env:"DRIVE_API_KEY"`
	// CredentialsJSON may be given raw or base64 encoded
	CredentialsJSON string `env:"DRIVE_CREDENTIALS_JSON"`
}

type Minio struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"videos"`
	PublicURL string `env:"MINIO_PUBLIC_URL"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

type GitHub struct {
	Owner  string `env:"GITHUB_OWNER"`
	Repo   string `env:"GITHUB_REPO"`
	Branch string `env:"GITHUB_BRANCH" envDefault:"main"`
	Token  string `env:"GITHUB_TOKEN"`
}

type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"5m"`
}

type Stream struct {
	ChunkSize       int64 `env:"STREAM_CHUNK_SIZE" envDefault:"1000000"`
	LookupCacheSize int   `env:"STREAM_LOOKUP_CACHE_SIZE" envDefault:"512"`
}

// Config is built once at start-up and treated as read-only afterwards
type Config struct {
	HTTP     HTTP
	Database Database
	Auth     Auth
	Upload   Upload
	Drive    Drive
	Minio    Minio
	GitHub   GitHub
	Redis    Redis
	Stream   Stream

	ObjectStore string `env:"OBJECT_STORE" envDefault:"drive"`
}

// Load parses the environment, normalizes values and validates the result
func Load() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.ObjectStore = strings.ToLower(strings.TrimSpace(c.ObjectStore))
	c.HTTP.ClientURL = strings.TrimRight(c.HTTP.ClientURL, "/")

	creds := strings.TrimSpace(c.Drive.CredentialsJSON)
	if creds != "" && !strings.HasPrefix(creds, "{") {
		if decoded, err := base64.StdEncoding.DecodeString(creds); err == nil {
			creds = string(decoded)
		}
	}
	c.Drive.CredentialsJSON = creds
}

// Validate checks the rules that span more than one variable
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}

	switch c.ObjectStore {
	case BackendDrive:
		if c.Drive.FolderID == "" {
			errs = append(errs, errors.New("DRIVE_FOLDER_ID is required for the drive object store"))
		}
		if c.Drive.APIKey == "" {
			errs = append(errs, errors.New("DRIVE_API_KEY is required for the drive object store"))
		}
	case BackendMinio:
		if c.Minio.Endpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT is required for the minio object store"))
		}
	default:
		errs = append(errs, fmt.Errorf("OBJECT_STORE must be %q or %q, got %q", BackendDrive, BackendMinio, c.ObjectStore))
	}

	if c.GitHub.Owner == "" || c.GitHub.Repo == "" || c.GitHub.Token == "" {
		errs = append(errs, errors.New("GITHUB_OWNER, GITHUB_REPO and GITHUB_TOKEN are required for thumbnails"))
	}

	if c.Upload.ThumbnailWidth <= 0 || c.Upload.ThumbnailHeight <= 0 {
		errs = append(errs, errors.New("thumbnail dimensions must be positive"))
	}
	if c.Stream.ChunkSize <= 0 {
		errs = append(errs, errors.New("STREAM_CHUNK_SIZE must be positive"))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.HTTP.Port
}
