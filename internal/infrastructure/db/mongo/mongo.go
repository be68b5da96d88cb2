// Package mongo wires the MongoDB client backing the user and asset stores.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// connectTimeout bounds the dial plus the verification ping.
const connectTimeout = 10 * time.Second

// defaultTimeout bounds individual repository operations.
const defaultTimeout = 10 * time.Second

type Config struct {
	URI      string
	Database string
	// Timeout overrides connectTimeout when positive.
	Timeout time.Duration
}

// Connect dials MongoDB, pings the primary to fail fast on a bad URI, and
// hands back the client together with the portfolio database. The caller
// owns the disconnect.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
