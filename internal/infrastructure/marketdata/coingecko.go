// Package marketdata implements the live price provider backed by the
// CoinGecko simple-price API.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"
	requestTimeout = 10 * time.Second
)

// CoinGecko fetches quotes from the CoinGecko simple-price endpoint.
// Demo API keys (prefix "CG-") and pro keys use different query parameters.
type CoinGecko struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Option mutates a CoinGecko client at construction time.
type Option func(*CoinGecko)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *CoinGecko) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *CoinGecko) { c.client = hc }
}

func NewCoinGecko(apiKey string, opts ...Option) *CoinGecko {
	c := &CoinGecko{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CoinGecko) SimplePrice(ctx context.Context, ids []string, include24hChange bool) (map[string]ports.PriceQuote, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	if include24hChange {
		q.Set("include_24hr_change", "true")
	}
	if c.apiKey != "" {
		if strings.HasPrefix(c.apiKey, "CG-") {
			q.Set("x_cg_demo_api_key", c.apiKey)
		} else {
			q.Set("x_cg_pro_api_key", c.apiKey)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var quotes map[string]ports.PriceQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return quotes, nil
}
