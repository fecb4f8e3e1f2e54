// Package cache provides a small Redis-backed cache for the browse feed.
// The cache is optional: when REDIS_URL is unset or Redis is unreachable the
// rest of the application reads straight from the database.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// FeedKey caches the raw browse rows shared by all users.
const FeedKey = "feed:open_requests"

// FeedTTL keeps the feed fresh enough that a missed invalidation heals fast.
const FeedTTL = 30 * time.Second

var client *redis.Client

// Connect initializes the Redis client from REDIS_URL. A missing URL or a
// failed ping leaves the cache disabled.
func Connect() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		slog.Info("REDIS_URL not set, feed cache disabled")
		return
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		slog.Warn("invalid REDIS_URL, feed cache disabled", "error", err)
		return
	}

	c := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, feed cache disabled", "error", err)
		return
	}

	client = c
	slog.Info("redis connection established")
}

// Enabled reports whether a Redis client is available
func Enabled() bool {
	return client != nil
}

// Get unmarshals the cached value at key into dest
func Get(ctx context.Context, key string, dest interface{}) error {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set stores value at key with an expiration
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, data, expiration).Err()
}

// GetOrSet returns the cached value at key, or calls fn to fetch it and
// caches the result. With the cache disabled it just calls fn.
func GetOrSet[T any](ctx context.Context, key string, expiration time.Duration, fn func() (T, error)) (T, error) {
	var result T

	if !Enabled() {
		return fn()
	}

	if err := Get(ctx, key, &result); err == nil {
		return result, nil
	}

	result, err := fn()
	if err != nil {
		return result, err
	}

	if err := Set(ctx, key, result, expiration); err != nil {
		slog.Warn("failed to cache value", "key", key, "error", err)
	}

	return result, nil
}

// Invalidate drops a key, ignoring errors; a stale feed entry expires on its
// own via the TTL
func Invalidate(ctx context.Context, key string) {
	if !Enabled() {
		return
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		slog.Warn("failed to invalidate cache key", "key", key, "error", err)
	}
}

// Close closes the Redis connection
func Close() {
	if client != nil {
		client.Close()
	}
}
