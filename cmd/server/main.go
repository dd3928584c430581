package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"Theatrum/internal/api/middleware"
	"Theatrum/internal/api/routes"
	"Theatrum/internal/auth"
	"Theatrum/internal/config"
	"Theatrum/internal/core/channels"
	"Theatrum/internal/core/comments"
	"Theatrum/internal/core/search"
	"Theatrum/internal/core/streaming"
	"Theatrum/internal/core/uploads"
	"Theatrum/internal/core/users"
	"Theatrum/internal/core/videos"
	"Theatrum/internal/db/migrations"
	postgresRepo "Theatrum/internal/db/postgres"
	redisCache "Theatrum/internal/db/redis"
	"Theatrum/internal/media/ffmpeg"
	"Theatrum/internal/media/thumbnail"
	"Theatrum/internal/metrics"
	"Theatrum/internal/storage/drive"
	githubStore "Theatrum/internal/storage/github"
	minioStore "Theatrum/internal/storage/minio"
)

// objectBackend stores uploaded videos and serves ranges of them back
type objectBackend interface {
	uploads.ObjectStore
	streaming.ObjectLocator
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgresRepo.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()
	logger.Info("connected to database")

	if err := postgresRepo.MigrateFS(db, migrations.FS, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations completed successfully")

	videoRepo, listCache, closeCache := videoRepository(ctx, cfg, db, logger)
	defer closeCache()

	var userRepo users.UserRepository = postgresRepo.NewUserRepository(db)
	var channelRepo channels.Repository = postgresRepo.NewChannelRepository(db)
	if listCache != nil {
		userRepo = redisCache.WrapUserRepository(userRepo, listCache)
		channelRepo = redisCache.WrapChannelRepository(channelRepo, listCache)
	}
	commentRepo := postgresRepo.NewCommentRepository(db)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	userService := users.NewUserService(userRepo, tokens, logger)
	videoService := videos.NewVideoService(videoRepo, logger)
	channelService := channels.NewChannelService(channelRepo, videoRepo, logger)
	commentService := comments.NewCommentService(commentRepo, videoRepo, logger)
	searchService := search.NewService(videoRepo, channelRepo)

	objects, err := newObjectBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	thumbStore, err := githubStore.New(githubStore.Config{
		Owner:  cfg.GitHub.Owner,
		Repo:   cfg.GitHub.Repo,
		Branch: cfg.GitHub.Branch,
		Token:  cfg.GitHub.Token,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail store: %w", err)
	}

	registry := prometheus.NewRegistry()
	uploadMetrics := metrics.NewUploadMetrics(registry)

	uploadCfg := uploads.DefaultConfig()
	uploadCfg.ThumbnailDir = cfg.Upload.ThumbnailDir
	uploadCfg.ThumbnailOffset = cfg.Upload.ThumbnailOffset
	uploadCfg.ThumbnailWidth = cfg.Upload.ThumbnailWidth
	uploadCfg.ThumbnailHeight = cfg.Upload.ThumbnailHeight
	uploadCfg.Timeout = cfg.Upload.PipelineTimeout

	orchestrator := uploads.NewOrchestrator(uploads.Dependencies{
		Store:        postgresRepo.NewUploadStore(db, videoRepo),
		Prober:       ffmpeg.NewProber(cfg.Upload.ProbeTimeout),
		Thumbnailer:  thumbnail.NewGenerator(ffmpeg.NewFrameExtractor()),
		ObjectStore:  objects,
		ContentStore: thumbStore,
	}, uploadCfg, logger, uploads.WithStageObserver(uploadMetrics.Observe))

	streamService, err := streaming.NewService(objects, streaming.Config{
		ChunkSize: cfg.Stream.ChunkSize,
		CacheSize: cfg.Stream.LookupCacheSize,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create stream service: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.HTTP.ClientURL},
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Range"},
		ExposedHeaders:   []string{"Content-Range", "Accept-Ranges", "Content-Length", "X-Subscribed"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateLimitWindow)
	defer rateLimiter.Stop()
	r.Use(rateLimiter.Middleware)

	guards := routes.NewGuards(middleware.NewAuthenticator(tokens), cfg.Auth.RequireForWrites)
	routes.RegisterUserRoutes(r, userService, guards)
	routes.RegisterVideoRoutes(r, videoService, commentService, guards)
	routes.RegisterChannelRoutes(r, channelService, guards)
	routes.RegisterUploadRoutes(r, orchestrator, routes.UploadOptions{
		StageDir: cfg.Upload.Dir,
		MaxBytes: cfg.HTTP.MaxUploadBytes,
	}, guards)
	routes.RegisterStreamRoutes(r, streamService)
	routes.RegisterSearchRoutes(r, searchService)

	r.Handle("/metrics", metrics.Handler(registry))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr, "object_store", cfg.ObjectStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		// uploads run synchronously inside requests, so give them the pipeline budget to finish
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Upload.PipelineTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// videoRepository wraps the Postgres repository in the Redis list cache when
// REDIS_ADDR is set. A Redis that is unreachable at start-up is skipped and
// the returned cache is nil.
func videoRepository(ctx context.Context, cfg *config.Config, db *sql.DB, logger *slog.Logger) (videos.Repository, *redisCache.CachedVideoRepository, func()) {
	repo := postgresRepo.NewVideoRepository(db)
	if cfg.Redis.Addr == "" {
		return repo, nil, func() {}
	}

	client, err := redisCache.Connect(ctx, redisCache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, video lists are not cached", "error", err)
		return repo, nil, func() {}
	}
	logger.Info("video list cache enabled", "addr", cfg.Redis.Addr)

	cache := redisCache.NewCachedVideoRepository(repo, client, cfg.Redis.TTL, logger)
	return cache, cache, func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis", "error", err)
		}
	}
}

func newObjectBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (objectBackend, error) {
	switch cfg.ObjectStore {
	case config.BackendMinio:
		client, err := minioStore.New(minioStore.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			PublicURL: cfg.Minio.PublicURL,
			UseSSL:    cfg.Minio.UseSSL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare minio bucket: %w", err)
		}
		return client, nil
	default:
		client, err := drive.New(ctx, drive.Config{
			FolderID:        cfg.Drive.FolderID,
			APIKey:          cfg.Drive.APIKey,
			CredentialsJSON: cfg.Drive.CredentialsJSON,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create drive client: %w", err)
		}
		return client, nil
	}
}
