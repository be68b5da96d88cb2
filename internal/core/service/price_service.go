package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cryptotrack/portfolio-api/internal/api/metrics"
	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

// PriceService serves live market quotes with a short-TTL cache in front of
// the upstream provider. Cache failures degrade to a direct provider call.
type PriceService struct {
	provider ports.PriceProvider
	cache    ports.PriceCache
	logger   zerolog.Logger
}

func NewPriceService(provider ports.PriceProvider, cache ports.PriceCache, logger zerolog.Logger) *PriceService {
	return &PriceService{provider: provider, cache: cache, logger: logger}
}

func (s *PriceService) GetPrices(ctx context.Context, ids []string, include24hChange bool) (map[string]ports.PriceQuote, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}

	key := cacheKey(ids, include24hChange)

	if quotes, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("price cache read failed")
	} else if ok {
		metrics.PriceCacheTotal.WithLabelValues("hit").Inc()
		return quotes, nil
	}
	metrics.PriceCacheTotal.WithLabelValues("miss").Inc()

	start := time.Now()
	quotes, err := s.provider.SimplePrice(ctx, ids, include24hChange)
	metrics.PriceFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, quotes); err != nil {
		s.logger.Warn().Err(err).Msg("price cache write failed")
	}
	return quotes, nil
}

// cacheKey is deterministic across id ordering so equivalent requests share
// a cache entry.
func cacheKey(ids []string, include24hChange bool) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return "prices:" + strings.Join(sorted, ",") + ":" + strconv.FormatBool(include24hChange)
}
