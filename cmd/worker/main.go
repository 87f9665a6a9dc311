package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"cvsite/internal/cloudflare"
	"cvsite/internal/config"
	"cvsite/internal/database"
	"cvsite/internal/logging"
	"cvsite/internal/metrics"
	"cvsite/internal/notify"
	"cvsite/internal/snapshot"
	"cvsite/internal/storage"
	"cvsite/internal/telemetry"
	"cvsite/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry, "worker", logger)
	if err != nil {
		log.Fatalf("init telemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("shutdown tracing failed", slog.Any("error", err))
		}
	}()

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	logger.Info("database connection ready for worker")

	storageClient, err := storage.NewClient(cfg.R2)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage client ready", slog.String("bucket", cfg.R2.Bucket))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	opts := worker.Options{
		Notifier:   notify.New(redisClient, logger),
		BaseDomain: cfg.Site.BaseDomain,
	}
	if cfg.Cloudflare.Enabled() {
		routes, err := cloudflare.NewKVClient(cfg.Cloudflare, "")
		if err != nil {
			log.Fatalf("init cloudflare kv: %v", err)
		}
		opts.Routes = routes
	} else {
		logger.Warn("cloudflare kv not configured, subdomain routes will not be written")
	}
	if cfg.Worker.RenderThumbnails {
		opts.Thumbnails = snapshot.NewRenderer()
	}

	server := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password}, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Logger:      newAsynqLogger(logger),
	})

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	worker.NewSiteTaskHandler(db, storageClient, logger, opts).Register(mux)

	if err := server.Start(mux); err != nil {
		log.Fatalf("start worker server: %v", err)
	}
	logger.Info("worker service started",
		slog.String("redis_addr", cfg.Redis.Addr()),
		slog.Int("concurrency", cfg.Worker.Concurrency),
		slog.Bool("thumbnails", cfg.Worker.RenderThumbnails))

	<-ctx.Done()
	logger.Info("shutting down worker")
	server.Shutdown()
}
