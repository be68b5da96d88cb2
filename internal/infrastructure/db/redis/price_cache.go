package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

const priceTTL = 30 * time.Second

// PriceCache stores market quote responses in Redis with a short TTL so
// bursts of dashboard refreshes do not hammer the upstream provider.
type PriceCache struct {
	client *redis.Client
}

func NewPriceCache(client *redis.Client) *PriceCache {
	return &PriceCache{client: client}
}

func (c *PriceCache) Get(ctx context.Context, key string) (map[string]ports.PriceQuote, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("price cache get: %w", err)
	}

	var quotes map[string]ports.PriceQuote
	if err := json.Unmarshal(raw, &quotes); err != nil {
		// stale or corrupt entry: treat as a miss
		return nil, false, nil
	}
	return quotes, true, nil
}

func (c *PriceCache) Set(ctx context.Context, key string, quotes map[string]ports.PriceQuote) error {
	raw, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("price cache marshal: %w", err)
	}
	return c.client.Set(ctx, key, raw, priceTTL).Err()
}
