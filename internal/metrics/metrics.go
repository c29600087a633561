// Package metrics exposes Prometheus counters and histograms for the
// reachability search, tile rendering, and cache paths, scraped at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry bundles every metric the service records, constructed once at
// startup and threaded through to the places that observe it.
type Registry struct {
	ReachabilitySearchDuration prometheus.Histogram
	TileRenderDuration         prometheus.Histogram
	CacheHits                  prometheus.Counter
	CacheMisses                prometheus.Counter
	RequestsTotal              *prometheus.CounterVec
}

// NewRegistry builds and registers every metric against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		ReachabilitySearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "transitheat",
			Subsystem: "reachability",
			Name:      "search_duration_seconds",
			Help:      "Time to compute a reachability table for one (origin, instant) query.",
			Buckets:   prometheus.DefBuckets,
		}),
		TileRenderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "transitheat",
			Subsystem: "heatmap",
			Name:      "render_duration_seconds",
			Help:      "Time to rasterize one 256x256 tile from a reachability table.",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "transitheat",
			Subsystem: "reachability",
			Name:      "cache_hits_total",
			Help:      "Reachability cache lookups served without recomputing.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "transitheat",
			Subsystem: "reachability",
			Name:      "cache_misses_total",
			Help:      "Reachability cache lookups that triggered a recompute.",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transitheat",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, labeled by route and status class.",
		}, []string{"route", "status_class"}),
	}
}
