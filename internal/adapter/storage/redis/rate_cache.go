package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"points-exchange/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RateCache implements ports.RateCache: a short-TTL cache of resolved
// rates, keyed by directed program pair. A miss is not an error; the
// resolver falls back to the feed.
type RateCache struct {
	client *goredis.Client
	prefix string
}

// NewRateCache creates a new Redis-backed rate cache.
func NewRateCache(client *goredis.Client) *RateCache {
	return &RateCache{
		client: client,
		prefix: "rate:",
	}
}

func (c *RateCache) key(from, to domain.Program) string {
	return fmt.Sprintf("%s%s:%s", c.prefix, from, to)
}

// Get returns the cached resolved rate for a pair. The second return is
// false on a miss.
func (c *RateCache) Get(ctx context.Context, from, to domain.Program) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, c.key(from, to)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("redis rate get: %w", err)
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		// A corrupt entry reads as a miss; the resolver overwrites it.
		return decimal.Zero, false, nil
	}
	return rate, true, nil
}

// Set stores a resolved rate with the given TTL.
func (c *RateCache) Set(ctx context.Context, from, to domain.Program, rate decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(from, to), rate.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis rate set: %w", err)
	}
	return nil
}
