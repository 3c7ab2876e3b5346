package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/protolab/portal-api/internal/api"
	"github.com/protolab/portal-api/internal/api/metrics"
	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/service"
	"github.com/protolab/portal-api/internal/infrastructure/db/mongo"
	"github.com/protolab/portal-api/internal/infrastructure/db/redis"
	"github.com/protolab/portal-api/internal/infrastructure/poll"
	"github.com/protolab/portal-api/internal/infrastructure/queue"
	"github.com/protolab/portal-api/internal/pkg/config"
	"github.com/protolab/portal-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Infrastructure ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Notification pipeline ---
	conversationRepo := mongo.NewConversationRepository(db)
	unread := redis.NewUnreadCounter(rdb)
	processor := service.NewChatEventProcessor(conversationRepo, unread)
	dispatcher := queue.NewDispatcher(0, processor, log)
	dispatcher.Start(ctx)

	// --- Unread notifier: samples the pooled admin inbox into the gauge ---
	notifier := poll.New(log)
	err = notifier.Start(ctx, cfg.PollInterval, func(ctx context.Context) error {
		n, err := unread.Get(ctx, domain.AdminInbox)
		if err != nil {
			metrics.PollTicksTotal.WithLabelValues("error").Inc()
			return err
		}
		metrics.UnreadMessages.Set(float64(n))
		metrics.PollTicksTotal.WithLabelValues("ok").Inc()
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("unread notifier failed to start")
	}
	defer notifier.Stop()

	// --- HTTP ---
	e, err := api.NewRouter(api.RouterConfig{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Events:    dispatcher,
		Log:       log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("portal api started")

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
