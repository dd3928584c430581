package uploads

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"Theatrum/internal/core/videos"
)

// Request is a received upload: form fields plus the file already staged on local disk
type Request struct {
	Title        string
	Description  string
	ChannelID    string
	UploaderID   string
	Type         string
	StagedPath   string
	OriginalName string
	ContentType  string
	Tags         []string
}

// Config controls thumbnail output and how long a run may take
type Config struct {
	ThumbnailDir    string
	ThumbnailPrefix string // directory inside the content store
	ThumbnailOffset time.Duration
	Timeout         time.Duration
	ThumbnailWidth  int
	ThumbnailHeight int
}

// DefaultConfig matches what clients expect: a 320x180 frame taken one second in
func DefaultConfig() Config {
	return Config{
		ThumbnailDir:    filepath.Join("uploads", "thumbnails"),
		ThumbnailPrefix: "thumbnails",
		ThumbnailOffset: time.Second,
		ThumbnailWidth:  320,
		ThumbnailHeight: 180,
		Timeout:         10 * time.Minute,
	}
}

// Dependencies are the collaborators a run calls out to
type Dependencies struct {
	Store        Store
	Prober       Prober
	Thumbnailer  Thumbnailer
	ObjectStore  ObjectStore
	ContentStore ContentStore
}

// Option customises an Orchestrator
type Option func(*Orchestrator)

// WithIDGenerator overrides how video ids are allocated
func WithIDGenerator(gen func() string) Option {
	return func(o *Orchestrator) { o.newID = gen }
}

// WithClock overrides the upload timestamp source
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithStageObserver registers a callback invoked on every stage transition
func WithStageObserver(fn func(videoID string, stage Stage)) Option {
	return func(o *Orchestrator) { o.observe = fn }
}

// Orchestrator runs the upload pipeline: rename, validate, probe, thumbnail,
// push both assets to remote storage, persist, clean up. There are no
// retries; the first failing step ends the run.
type Orchestrator struct {
	deps    Dependencies
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
	observe func(videoID string, stage Stage)
	cfg     Config
}

// NewOrchestrator creates an upload orchestrator
func NewOrchestrator(deps Dependencies, cfg Config, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		deps:   deps,
		cfg:    cfg,
		logger: logger,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run carries the state of one pipeline execution
type run struct {
	req           Request
	videoID       string
	ext           string
	videoPath     string
	thumbnailPath string
	metadata      videos.Metadata
	category      videos.Category
	objectID      string
	thumbnailURL  string
}

// Run executes the pipeline for one upload. It returns the persisted video,
// or a *StageError naming the stage that failed. Local files are removed on
// every exit path.
//
// The run is detached from ctx cancellation so a client disconnect does not
// strand remote uploads halfway; it is bounded by Config.Timeout instead.
func (o *Orchestrator) Run(ctx context.Context, req Request) (video *videos.Video, err error) {
	ctx = context.WithoutCancel(ctx)
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	r := &run{
		req:       req,
		videoID:   o.newID(),
		videoPath: req.StagedPath,
	}
	logger := o.logger.With("video_id", r.videoID)
	o.transition(logger, r, StageReceived)

	defer func() {
		o.cleanup(logger, r)
		o.transition(logger, r, StageCleanedUp)
		if err != nil {
			logger.Error("upload failed", "error", err)
			o.transition(logger, r, StageFailed)
			return
		}
		o.transition(logger, r, StageCompleted)
	}()

	if err := o.rename(r); err != nil {
		return nil, err
	}
	o.transition(logger, r, StageRenamed)

	if err := o.validate(ctx, r); err != nil {
		return nil, err
	}
	o.transition(logger, r, StageValidated)

	meta, perr := o.deps.Prober.Probe(ctx, r.videoPath)
	if perr != nil {
		return nil, fail(StageProbed, KindExternalService, fmt.Errorf("%w: %w", ErrMetadataExtractionFailed, perr))
	}
	r.metadata = meta
	o.transition(logger, r, StageProbed)

	if err := o.thumbnail(ctx, r); err != nil {
		return nil, err
	}
	o.transition(logger, r, StageThumbnailed)

	if err := o.pushRemote(ctx, r); err != nil {
		return nil, err
	}
	o.transition(logger, r, StageRemoteAssetsUploaded)

	persisted, serr := o.deps.Store.PersistVideo(ctx, o.buildVideo(r))
	if serr != nil {
		return nil, fail(StagePersisted, KindInternal, fmt.Errorf("%w: %w", ErrPersistFailed, serr))
	}
	o.transition(logger, r, StagePersisted)

	return persisted, nil
}

// rename moves the staged file to <videoId><ext> next to where it was staged
func (o *Orchestrator) rename(r *run) error {
	if strings.TrimSpace(r.req.StagedPath) == "" {
		return fail(StageRenamed, KindValidation, fmt.Errorf("%w: video file", ErrMissingFields))
	}

	r.ext = strings.ToLower(filepath.Ext(r.req.OriginalName))
	if r.ext == "" {
		r.ext = strings.ToLower(filepath.Ext(r.req.StagedPath))
	}

	target := filepath.Join(filepath.Dir(r.req.StagedPath), r.videoID+r.ext)
	if err := os.Rename(r.req.StagedPath, target); err != nil {
		return fail(StageRenamed, KindInternal, fmt.Errorf("%w: %w", ErrStagingFailed, err))
	}
	r.videoPath = target
	return nil
}

// validate runs before any external service is contacted
func (o *Orchestrator) validate(ctx context.Context, r *run) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", r.req.Title},
		{"description", r.req.Description},
		{"channelId", r.req.ChannelID},
		{"uploaderId", r.req.UploaderID},
		{"type", r.req.Type},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fail(StageValidated, KindValidation, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", ")))
	}

	category, ok := videos.ParseCategory(r.req.Type)
	if !ok {
		return fail(StageValidated, KindValidation, fmt.Errorf("%w: %q", ErrInvalidCategory, r.req.Type))
	}
	r.category = category

	for _, ref := range []struct {
		what   string
		id     string
		exists func(context.Context, string) (bool, error)
	}{
		{"channel", r.req.ChannelID, o.deps.Store.ChannelExists},
		{"uploader", r.req.UploaderID, o.deps.Store.UserExists},
	} {
		if _, err := uuid.Parse(ref.id); err != nil {
			return fail(StageValidated, KindValidation, fmt.Errorf("%w: %s %q", ErrInvalidReference, ref.what, ref.id))
		}
		ok, err := ref.exists(ctx, ref.id)
		if err != nil {
			return fail(StageValidated, KindInternal, fmt.Errorf("failed to look up %s: %w", ref.what, err))
		}
		if !ok {
			return fail(StageValidated, KindValidation, fmt.Errorf("%w: %s %q does not exist", ErrInvalidReference, ref.what, ref.id))
		}
	}
	return nil
}

func (o *Orchestrator) thumbnail(ctx context.Context, r *run) error {
	if err := os.MkdirAll(o.cfg.ThumbnailDir, 0o755); err != nil {
		return fail(StageThumbnailed, KindInternal, fmt.Errorf("%w: %w", ErrThumbnailGenerationFailed, err))
	}

	out := filepath.Join(o.cfg.ThumbnailDir, r.videoID+".jpg")
	r.thumbnailPath = out
	err := o.deps.Thumbnailer.Generate(ctx, r.videoPath, out, o.cfg.ThumbnailOffset, o.cfg.ThumbnailWidth, o.cfg.ThumbnailHeight)
	if err != nil {
		return fail(StageThumbnailed, KindExternalService, fmt.Errorf("%w: %w", ErrThumbnailGenerationFailed, err))
	}
	return nil
}

// pushRemote uploads the thumbnail and the video concurrently. Both must
// succeed; an upload that finished before the other failed is not undone.
func (o *Orchestrator) pushRemote(ctx context.Context, r *run) error {
	thumb, err := os.ReadFile(r.thumbnailPath)
	if err != nil {
		return fail(StageRemoteAssetsUploaded, KindInternal, fmt.Errorf("failed to read thumbnail: %w", err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := o.deps.ContentStore.Put(gctx, path.Join(o.cfg.ThumbnailPrefix, r.videoID+".jpg"), thumb)
		if err != nil {
			return fmt.Errorf("thumbnail: %w", err)
		}
		r.thumbnailURL = url
		return nil
	})
	g.Go(func() error {
		id, err := o.deps.ObjectStore.Upload(gctx, r.videoID+r.ext, r.videoPath, contentTypeFor(r))
		if err != nil {
			return fmt.Errorf("video: %w", err)
		}
		r.objectID = id
		return nil
	})

	if err := g.Wait(); err != nil {
		return fail(StageRemoteAssetsUploaded, KindExternalService, fmt.Errorf("%w: %w", ErrRemoteUploadFailed, err))
	}
	return nil
}

func (o *Orchestrator) buildVideo(r *run) *videos.Video {
	tags := r.req.Tags
	if tags == nil {
		tags = []string{}
	}
	return &videos.Video{
		ID:           r.videoID,
		Title:        strings.TrimSpace(r.req.Title),
		Description:  r.req.Description,
		URL:          o.deps.ObjectStore.StreamingURL(r.objectID),
		ThumbnailURL: r.thumbnailURL,
		ChannelID:    r.req.ChannelID,
		UploaderID:   r.req.UploaderID,
		Type:         r.category,
		Tags:         tags,
		Metadata:     r.metadata,
		LikedBy:      []string{},
		DislikedBy:   []string{},
		UploadDate:   o.now(),
	}
}

// cleanup removes local files. Failures are logged and never change the outcome.
func (o *Orchestrator) cleanup(logger *slog.Logger, r *run) {
	for _, p := range []string{r.videoPath, r.thumbnailPath} {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to remove local upload file", "path", p, "error", err)
		}
	}
}

func (o *Orchestrator) transition(logger *slog.Logger, r *run, stage Stage) {
	logger.Debug("upload stage", "stage", stage.String())
	if o.observe != nil {
		o.observe(r.videoID, stage)
	}
}

func contentTypeFor(r *run) string {
	if r.req.ContentType != "" && r.req.ContentType != "application/octet-stream" {
		return r.req.ContentType
	}
	if ct := mime.TypeByExtension(r.ext); ct != "" {
		return ct
	}
	return "video/mp4"
}
