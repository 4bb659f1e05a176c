package testutil

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/creatorly/videos-ms-go/internal/db"
	workerHandler "github.com/creatorly/videos-ms-go/internal/handler/worker"
	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/port"
	"github.com/creatorly/videos-ms-go/internal/prober"
	"github.com/creatorly/videos-ms-go/internal/repository/mariadb"
	"github.com/creatorly/videos-ms-go/internal/staging"
	"github.com/creatorly/videos-ms-go/internal/storage"
	"github.com/creatorly/videos-ms-go/internal/task"
	videoSvc "github.com/creatorly/videos-ms-go/internal/usecase/video"
)

// StartWorker starts an asynq worker driving video processing tasks, with a
// fast poll policy suited to tests. It returns a function to gracefully shut
// the worker down.
func StartWorker(dbConn *db.Database, strg *storage.MinioStorage, stager *staging.Stager, tc port.TranscodeClient, redisAddr, videosBucket, thumbsBucket string) func() {
	videoRepo := mariadb.NewVideoRepository(dbConn.DB)
	accountRepo := mariadb.NewAccountRepository(dbConn.DB)

	opts := videoSvc.DefaultProcessorOptions(videosBucket, thumbsBucket)
	opts.PollInterval = 50 * time.Millisecond
	opts.MaxPollAttempts = 100
	processor := videoSvc.NewVideoProcessor(videoRepo, accountRepo, tc, strg, prober.NewFFProbe(), stager, opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessVideo, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseProcessVideoPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessVideoHandler(ctx, p, processor)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 5})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
