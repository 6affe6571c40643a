package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the instrumentation for the exchange-rate subsystem.
type Metrics struct {
	RateCacheHits     prometheus.Counter
	RateCacheMisses   prometheus.Counter
	SourceFetches     prometheus.Counter
	SourceFetchErrors prometheus.Counter
	FallbackServed    prometheus.Counter
	Conversions       prometheus.Counter
}

// New registers the exchange-rate metrics on reg. Tests pass a fresh
// prometheus.NewRegistry so repeated construction doesn't collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_rate_cache_hits_total",
			Help: "Total number of rate cache hits",
		}),
		RateCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_rate_cache_misses_total",
			Help: "Total number of rate cache misses",
		}),
		SourceFetches: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_rate_source_fetches_total",
			Help: "Total number of fetches against the external rate provider",
		}),
		SourceFetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_rate_source_fetch_errors_total",
			Help: "Total number of failed fetches against the external rate provider",
		}),
		FallbackServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_rate_fallback_served_total",
			Help: "Total number of requests answered from the static fallback table",
		}),
		Conversions: factory.NewCounter(prometheus.CounterOpts{
			Name: "currency_conversions_total",
			Help: "Total number of currency conversion requests",
		}),
	}
}
