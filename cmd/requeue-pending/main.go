package main

import (
	"context"
	"log"

	"github.com/creatorly/videos-ms-go/internal/config"
	"github.com/creatorly/videos-ms-go/internal/db"
	"github.com/creatorly/videos-ms-go/internal/port"
	"github.com/creatorly/videos-ms-go/internal/repository/mariadb"
	"github.com/creatorly/videos-ms-go/internal/staging"
	"github.com/creatorly/videos-ms-go/internal/task"
	videoSvc "github.com/creatorly/videos-ms-go/internal/usecase/video"
)

// Re-enqueues processing tasks for videos stuck in pending, typically after a
// worker crash. Meant to run from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	stager, err := staging.NewStager(cfg.StagingDir)
	if err != nil {
		log.Fatalf("❌  Failed to initialize staging dir %q: %v", cfg.StagingDir, err)
	}

	dispatcher := initDispatcher(cfg)
	videoRepo := mariadb.NewVideoRepository(database.DB)
	accountRepo := mariadb.NewAccountRepository(database.DB)

	requeuer := videoSvc.NewPendingRequeuer(videoRepo, accountRepo, stager, dispatcher)
	if err := requeuer.RequeuePending(context.Background()); err != nil {
		log.Fatalf("❌  Pending requeue failed: %v", err)
	}
	log.Println("✅  Pending requeue completed")
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
