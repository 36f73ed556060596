package redis

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// Connect opens a Redis client for addr and pings it, so callers can fall back
// to running uncached when no server is reachable.
func Connect(ctx context.Context, addr string, timeout time.Duration) (*redisv9.Client, error) {
	client := redisv9.NewClient(&redisv9.Options{
		Addr:         addr,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   -1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}
	return client, nil
}
