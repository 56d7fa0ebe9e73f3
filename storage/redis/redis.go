package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"taxifleet/config"
	"taxifleet/pkg/logger"
)

// Client wraps the go-redis client used for login sessions.
type Client struct {
	*redis.Client
}

// New connects to Redis. It returns nil, nil when no Redis host is configured.
func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Client, error) {
	addr := cfg.RedisAddr()
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.Error("failed to ping Redis", logger.Error(err), logger.String("addr", addr))
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	log.Info("Redis connected", logger.String("addr", addr))
	return &Client{Client: client}, nil
}
