package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-journal/internal/config"
	"github.com/iliyamo/travel-journal/internal/database"
	"github.com/iliyamo/travel-journal/internal/handler"
	"github.com/iliyamo/travel-journal/internal/middleware"
	"github.com/iliyamo/travel-journal/internal/queue"
	"github.com/iliyamo/travel-journal/internal/repository"
	"github.com/iliyamo/travel-journal/internal/router"
	"github.com/iliyamo/travel-journal/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	var assets storage.AssetStore
	if cfg.StorageDriver == "s3" {
		assets, err = storage.NewS3Store(context.Background(),
			cfg.S3Region, cfg.S3Endpoint, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
	} else {
		assets, err = storage.NewLocalStore(cfg.UploadsDir)
	}
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	stories := repository.NewStoryRepo(db)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.Register(e, cfg,
		handler.NewAuthHandler(cfg, users),
		handler.NewStoryHandler(cfg, stories, assets),
		handler.NewImageHandler(cfg, assets),
		rdb)

	// Audit consumer for story.deleted events; runs its own reconnect loop.
	go func() {
		if err := queue.StartStoryDeletedConsumer(); err != nil {
			log.Printf("journal-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
