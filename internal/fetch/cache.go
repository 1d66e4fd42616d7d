package fetch

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/pitcast/pitcast/internal/models"
)

// RedisCache keeps fetched order pages in redis so repeat runs against the
// same range skip the API entirely until the TTL expires.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(cfg *models.Config) *RedisCache {
	return &RedisCache{
		rdb: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
		ttl: cfg.RedisTTL,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, key, value, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
