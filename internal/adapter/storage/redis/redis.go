package redis

import (
	"context"
	"fmt"

	"points-exchange/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// clientName identifies this service in redis CLIENT LIST output.
const clientName = "points-exchange"

// NewClient creates a Redis client and verifies connectivity. The pool
// serves both the rate cache and the rate limiter, so it is sized from
// config rather than the driver default.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		ClientName:   clientName,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Int("pool_size", cfg.PoolSize).
		Msg("Redis connection established")

	return client, nil
}
