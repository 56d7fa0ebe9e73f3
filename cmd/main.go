package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"taxifleet/api"
	"taxifleet/config"
	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/pkg/notify"
	"taxifleet/service"
	"taxifleet/storage"
	"taxifleet/storage/memory"
	"taxifleet/storage/postgres"
	"taxifleet/storage/redis"
)

func main() {
	cfg := config.Load()

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stg, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", logger.Error(err))
		os.Exit(1)
	}
	defer stg.Close()

	sessions, closeSessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open session store", logger.Error(err))
		os.Exit(1)
	}
	defer closeSessions()

	m := metrics.New()

	notifier, err := notify.New(cfg.AdminBotToken, cfg.AdminChatID, log, m)
	if err != nil {
		log.Error("failed to initialize admin notifier", logger.Error(err))
		os.Exit(1)
	}

	svc := service.New(cfg, stg, sessions, log, m, notifier)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           api.New(cfg, svc, log, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server is starting", logger.Int("port", cfg.HTTPPort), logger.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return notifier.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func newLogger(cfg config.Config) logger.ILogger {
	if cfg.IsProduction() {
		return logger.NewProduction(cfg.ServiceName, cfg.LoggerLevel)
	}
	return logger.New(cfg.ServiceName, cfg.LoggerLevel)
}

func openStorage(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warning("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	case config.StoragePostgres:
		return postgres.New(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}
}

// openSessions uses Redis when REDIS_HOST is set, otherwise process memory.
func openSessions(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.ISessionStorage, func(), error) {
	client, err := redis.New(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Info("using in-memory session store")
		return memory.NewSessionStore(), func() {}, nil
	}
	return redis.NewSessionRepo(client), func() { _ = client.Close() }, nil
}
