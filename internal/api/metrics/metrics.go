// Package metrics defines and registers all custom Prometheus metrics for
// the portfolio API. It is the single source of truth for metric names,
// labels, and help strings. Metrics use promauto and register themselves
// with the default registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cryptotrack"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successfully registered accounts.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created via registration.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (failure covers unknown email and wrong password alike)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Asset metrics ─────────────────────────────────────────────────────────────

// AssetWritesTotal counts successful asset mutations.
// Label:
//   - op: "create", "update", or "delete"
var AssetWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_writes_total",
		Help:      "Total number of successful asset mutations, by operation.",
	},
	[]string{"op"},
)

// ── Price proxy metrics ───────────────────────────────────────────────────────

// PriceCacheTotal counts cache lookups for market quotes.
// Label:
//   - result: "hit" or "miss"
var PriceCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_cache_total",
		Help:      "Total number of price cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// PriceFetchDuration measures upstream market data fetch latency.
var PriceFetchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "price_fetch_duration_seconds",
		Help:      "Duration of upstream market data requests.",
		Buckets:   prometheus.DefBuckets,
	},
)
