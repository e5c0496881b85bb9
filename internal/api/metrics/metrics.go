// Package metrics defines and registers all custom Prometheus metrics for
// the weather API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "weather"

// CacheLookupsTotal counts weather-cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (origin fetch required)
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of weather cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// OriginFetchesTotal counts calls to the origin weather provider.
// Label:
//   - outcome: "success" or "error"
var OriginFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "origin_fetches_total",
		Help:      "Total number of origin weather API calls, labelled by outcome.",
	},
	[]string{"outcome"},
)

// QueriesRecordedTotal counts ledger records successfully appended.
var QueriesRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_recorded_total",
		Help:      "Total number of weather query ledger records written.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)
