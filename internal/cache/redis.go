// Package cache provides the Redis client used for rate limiting.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis initializes the global Redis client. The connection is probed
// with a short timeout; rate limiting degrades per its fail policy if Redis
// is unreachable.
func InitRedis(addr string) {
	client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unavailable; rate limiting will follow its fail policy",
			slog.String("addr", addr),
			slog.String("error", err.Error()),
		)
	}
}

// GetClient returns the global Redis client, or nil if InitRedis has not run.
func GetClient() *redis.Client {
	return client
}
