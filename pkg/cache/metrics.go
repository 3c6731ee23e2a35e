package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes cache effectiveness counters. The hit/miss split mirrors
// the counters the in-browser predecessor of this cache kept for tuning.
type Metrics struct {
	Hits   prometheus.Counter
	Misses prometheus.Counter
}

// NewMetrics registers hit/miss counters for the named cache with reg.
func NewMetrics(reg prometheus.Registerer, cacheName string) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "cardledger_cache_hits_total",
			Help:        "Cache lookups answered from memory.",
			ConstLabels: prometheus.Labels{"cache": cacheName},
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "cardledger_cache_misses_total",
			Help:        "Cache lookups that had to compute.",
			ConstLabels: prometheus.Labels{"cache": cacheName},
		}),
	}
	reg.MustRegister(m.Hits, m.Misses)
	return m
}
