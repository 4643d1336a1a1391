package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns nil when no REDIS_URL is configured.
func InitRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	if cfg.Redis.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}
