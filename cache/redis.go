package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CoderAnshul/AdDash/config"
)

const (
	// Cache key patterns
	UserListPattern     = "users:*"
	UserDetailPattern   = "user:%s"
	ListenerListPattern = "listeners:*"
	SessionListPattern  = "sessions:*"
	AuthSessionPattern  = "authsession:%s"

	UserListKey     = "users:all"
	ListenerListKey = "listeners:all"
)

// Cache wraps the Redis client with JSON helpers
type Cache struct {
	client *redis.Client
}

// New connects a Redis client and verifies the connection
func New(ctx context.Context, cfg *config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &Cache{client: client}, nil
}

// NewFromClient wraps an existing client, used by tests with miniredis
func NewFromClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Set stores data as JSON under key
func (c *Cache) Set(ctx context.Context, key string, data interface{}, expiration time.Duration) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, dataJSON, expiration).Err()
}

// Get retrieves JSON data from key into dest. Returns redis.Nil on miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Delete removes a single key
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// DeleteByPattern deletes all keys matching a pattern
func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Keys returns all keys matching a pattern
func (c *Cache) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

// Ping checks connectivity to the Redis server
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// IsMiss reports whether err is a cache miss
func IsMiss(err error) bool {
	return err == redis.Nil
}

// Close releases the underlying client
func (c *Cache) Close() error {
	return c.client.Close()
}
