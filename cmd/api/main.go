package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/creatorly/videos-ms-go/internal/cache"
	"github.com/creatorly/videos-ms-go/internal/config"
	"github.com/creatorly/videos-ms-go/internal/db"
	"github.com/creatorly/videos-ms-go/internal/handler"
	"github.com/creatorly/videos-ms-go/internal/handler/api"
	"github.com/creatorly/videos-ms-go/internal/logger"
	cMiddleware "github.com/creatorly/videos-ms-go/internal/middleware"
	"github.com/creatorly/videos-ms-go/internal/port"
	"github.com/creatorly/videos-ms-go/internal/repository/mariadb"
	"github.com/creatorly/videos-ms-go/internal/staging"
	"github.com/creatorly/videos-ms-go/internal/storage"
	"github.com/creatorly/videos-ms-go/internal/task"
	"github.com/creatorly/videos-ms-go/internal/transcoder"
	videoSvc "github.com/creatorly/videos-ms-go/internal/usecase/video"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, []string{cfg.VideosBucket, cfg.ThumbsBucket})

	stager, err := staging.NewStager(cfg.StagingDir)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize staging dir %q: %v", cfg.StagingDir, err)
		os.Exit(1)
	}

	videoRepo := mariadb.NewVideoRepository(database.DB)
	accountRepo := mariadb.NewAccountRepository(database.DB)
	tc := transcoder.NewClient(cfg.TranscoderURL)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured — status caching and task dispatch are disabled")
	}

	admitSvc := videoSvc.NewUploadAdmitter(videoRepo, accountRepo, stager, strg, dispatcher, cfg.ThumbsBucket)
	r.Post("/videos/upload", api.UploadVideoHandler(admitSvc))

	statusSvc := videoSvc.NewProcessingStatusGetter(tc, ca)
	r.Get("/videos/status/{key}", api.GetStatusHandler(statusSvc))

	listSvc := videoSvc.NewVideoLister(videoRepo)
	r.Get("/videos", api.ListVideosHandler(listSvc))

	retrySvc := videoSvc.NewUploadRetrier(videoRepo, accountRepo, stager, dispatcher)
	r.With(cMiddleware.WithVideoID()).
		Post("/videos/{id}/retry", api.RetryVideoHandler(retrySvc))

	deleteSvc := videoSvc.NewVideoDeleter(videoRepo, strg, cfg.VideosBucket, cfg.ThumbsBucket)
	r.With(cMiddleware.WithVideoID()).
		Delete("/videos/{id}", api.DeleteVideoHandler(deleteSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(jwtKey string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithDSTAuth(jwtKey))

	r.NotFound(handler.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
