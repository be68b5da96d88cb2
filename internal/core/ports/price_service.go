package ports

import "context"

// PriceQuote is the per-coin quote shape returned by the market data
// provider: currency (or change key) → value, e.g. {"usd": 42000.5}.
type PriceQuote map[string]float64

// PriceProvider fetches live quotes from the upstream market data API.
type PriceProvider interface {
	// SimplePrice returns quotes keyed by coin id for the requested ids.
	SimplePrice(ctx context.Context, ids []string, include24hChange bool) (map[string]PriceQuote, error)
}

// PriceCache is a short-TTL cache for provider responses.
type PriceCache interface {
	Get(ctx context.Context, key string) (map[string]PriceQuote, bool, error)
	Set(ctx context.Context, key string, quotes map[string]PriceQuote) error
}

// PriceService serves quote lookups, consulting the cache first.
type PriceService interface {
	GetPrices(ctx context.Context, ids []string, include24hChange bool) (map[string]PriceQuote, error)
}
