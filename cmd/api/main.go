package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"cvsite/internal/api"
	"cvsite/internal/auth"
	"cvsite/internal/config"
	"cvsite/internal/cvparse"
	"cvsite/internal/database"
	"cvsite/internal/email"
	"cvsite/internal/llm"
	"cvsite/internal/logging"
	"cvsite/internal/notify"
	"cvsite/internal/planner"
	"cvsite/internal/ratelimit"
	"cvsite/internal/revision"
	"cvsite/internal/site"
	"cvsite/internal/storage"
	"cvsite/internal/telemetry"
)

func main() {
	cfg := config.MustLoad()

	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry, "api", logger)
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
	if err := database.Migrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	logger.Info("database ready",
		slog.String("host", cfg.Database.Host),
		slog.Int("port", cfg.Database.Port),
		slog.String("db", cfg.Database.Name))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password})
	defer asynqClient.Close()

	storageClient, err := storage.NewClient(cfg.R2)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}

	tokens, err := auth.LoadService(cfg.Auth, redisClient)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	gemini, err := llm.NewGeminiClient(ctx, cfg.Gemini, logger)
	if err != nil {
		log.Fatalf("init gemini client: %v", err)
	}
	notifier := notify.New(redisClient, logger)
	sites := site.NewService(db, planner.New(gemini, logger), asynqClient, notifier, site.Config{
		MaxRevisions: cfg.Site.MaxRevisions,
		StaleAfter:   cfg.Site.GenerationTTL,
		BaseDomain:   cfg.Site.BaseDomain,
	}, logger)

	var scanner api.MalwareScanner
	if cfg.Upload.ClamdAddr != "" {
		scanner = api.NewClamdScanner(cfg.Upload.ClamdAddr)
	}

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, api.Handlers{
		Auth:    api.NewAuthHandler(db, tokens, ratelimit.New(redisClient, "login", cfg.Auth.LoginRateLimitPerHour, time.Hour), cfg.Auth.CookieDomain),
		Sites:   api.NewSiteHandler(sites, revision.New(gemini, logger)),
		CV:      api.NewCVHandler(cvparse.New(gemini), sites, cfg.Upload.MaxCVBytes),
		Uploads: api.NewUploadHandler(sites, storageClient, api.UploadOptions{
			MaxBytes:       cfg.Upload.MaxImageBytes,
			PortfolioLimit: cfg.Site.PortfolioLimit,
			Scanner:        scanner,
		}),
		Contact:   api.NewContactHandler(db, email.NewResendClient(cfg.Resend), ratelimit.New(redisClient, "contact", cfg.Contact.RateLimitPerHour, time.Hour), cfg.Resend.ContactToEmail),
		Templates: api.NewTemplateHandler(),
		Ws:        api.NewWsHandler(redisClient, tokens, logger, cfg.API.AllowedOrigins),
	}, tokens)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start api server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
