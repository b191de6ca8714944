package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis at addr. A nil client is returned when Redis is
// unreachable; rate limiting then fails open.
func NewClient(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis connection failed, continuing without rate limiting", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}

	slog.Info("redis connected", "addr", addr)
	return client
}
