package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/toolflix/backend/pkg/logger"
	"github.com/toolflix/backend/pkg/redis"
)

// Cache TTLs are short: the database is the source of truth and the cache
// only absorbs read bursts on the public endpoints.
const (
	gamesCacheTTL        = 60 * time.Second
	premiumTotalCacheTTL = 30 * time.Second
)

// CacheService is a thin JSON layer over the Redis client. With Redis
// disabled every Get is a miss and every Set a no-op.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

// GetJSON reads and unmarshals a cached value into dest, reporting whether
// a usable value was present. A corrupt entry is dropped and read as a miss.
func (c *CacheService) GetJSON(ctx context.Context, key string, dest any) bool {
	data, ok := c.client.Get(ctx, key)
	if !ok {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.WarnWithContext(ctx, "Dropping corrupt cache entry").
			String("cache_key", key).
			Err(err).
			Log()
		c.client.Del(ctx, key)
		return false
	}

	return true
}

// SetJSON marshals and stores a value. Marshal failures are logged, never fatal.
func (c *CacheService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to marshal cache value").
			String("cache_key", key).
			Err(err).
			Log()
		return
	}

	c.client.Set(ctx, key, data, ttl)
}

// Invalidate removes keys after a mutation.
func (c *CacheService) Invalidate(ctx context.Context, keys ...string) {
	c.client.Del(ctx, keys...)
}
