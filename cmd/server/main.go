package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/joebaillie21/daycipe.io/internal/config"
	"github.com/joebaillie21/daycipe.io/internal/db"
	"github.com/joebaillie21/daycipe.io/internal/handler"
	"github.com/joebaillie21/daycipe.io/internal/middleware"
	"github.com/joebaillie21/daycipe.io/internal/policy"
	"github.com/joebaillie21/daycipe.io/internal/repository"
	"github.com/joebaillie21/daycipe.io/internal/router"
	"github.com/joebaillie21/daycipe.io/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "daycipe")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	pol, err := policy.New(cfg.HideThresholds)
	if err != nil {
		log.Fatalf("invalid visibility configuration: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	contentRepo := repository.NewContentRepo(pool)
	reportRepo := repository.NewReportRepo(pool)

	var voteState service.VoteState = service.NewMemoryVoteState()
	if cache.Client() != nil {
		voteState = service.NewRedisVoteState(cache.Client())
	}

	contentSvc := service.NewContentService(contentRepo, cache)
	voteSvc := service.NewVoteService(contentRepo, pol, cache, voteState)
	reportSvc := service.NewReportService(reportRepo)

	worker := service.NewReconcileWorker(pool, pol, cache, cfg.ReconcileInterval)
	go worker.Start(ctx)

	handler.RegisterMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "Daycipe API",
		ServerHeader: "Daycipe",
	})

	router.Setup(app, &router.Handlers{
		Content: handler.NewContentHandler(contentSvc),
		Vote:    handler.NewVoteHandler(voteSvc),
		Report:  handler.NewReportHandler(reportSvc),
		Stats:   handler.NewStatsHandler(contentSvc, reportSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("daycipe backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
