package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds Redis connection settings. Caching is optional: with
// Enabled=false the client degrades to a no-op and every read is a miss.
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Client struct {
	rdb     *redis.Client
	enabled bool
	log     *zap.Logger
}

// NewClient creates a Redis client. A failed initial ping disables caching
// instead of failing startup; the backend works without Redis.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if !cfg.Enabled {
		return &Client{enabled: false, log: log}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, caching disabled",
			zap.String("address", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
			zap.Error(err),
		)
		_ = rdb.Close()
		return &Client{enabled: false, log: log}
	}

	log.Info("Successfully connected to Redis",
		zap.String("address", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("database", cfg.DB),
	)

	return &Client{rdb: rdb, enabled: true, log: log}
}

func (c *Client) IsEnabled() bool {
	return c != nil && c.enabled
}

func (c *Client) Ping(ctx context.Context) error {
	if !c.IsEnabled() {
		return fmt.Errorf("redis disabled")
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if !c.IsEnabled() {
		return nil
	}
	return c.rdb.Close()
}

// Get returns the cached value and whether it was present.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.IsEnabled() {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Failed to read cache", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	return data, true
}

// Set stores a value with a TTL. Cache write failures are logged, never fatal.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if !c.IsEnabled() {
		return
	}

	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn("Failed to set cache",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)
	}
}

// Del removes keys, used for invalidation after mutations.
func (c *Client) Del(ctx context.Context, keys ...string) {
	if !c.IsEnabled() || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Failed to invalidate cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
