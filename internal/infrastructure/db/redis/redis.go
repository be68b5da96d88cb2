// Package redis wires the Redis client behind the price cache and the
// readiness probe.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout keeps startup from hanging on an unreachable server.
const pingTimeout = 5 * time.Second

type Config struct {
	Addr string
	DB   int
	// Timeout overrides pingTimeout when positive.
	Timeout time.Duration
}

// Connect opens a Redis client and verifies the server answers before the
// cache goes live.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
