package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/sms-gateway-connector/internal/cache"
)

// Client is a thin Redis-backed implementation of the cache interface.
type Client struct {
	rdb *redis.Client
}

// New wraps an existing go-redis client. The bus and the cache share one
// connection pool.
func New(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Ping checks if Redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get retrieves a value by key.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", cache.ErrNotFound
	}
	return v, err
}

// Incr atomically increments the numeric value at key.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

var _ cache.Cache = (*Client)(nil)
