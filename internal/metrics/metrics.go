package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolution outcomes per user selection event
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variant_resolutions_total",
			Help: "Total number of resolved selection events",
		},
		[]string{"outcome"}, // cache_hit, fetched, superseded, failed
	)

	// Prefetch attempts by result
	Prefetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variant_prefetches_total",
			Help: "Total number of speculative prefetch attempts",
		},
		[]string{"result"}, // completed, failed, skipped_cached, skipped_inflight, skipped_hidden
	)

	// Fragment cache hits/misses per tier
	FragmentCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fragment_cache_hits_total",
			Help: "Total number of fragment cache hits",
		},
		[]string{"tier"}, // session, shared, l2
	)

	FragmentCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fragment_cache_misses_total",
			Help: "Total number of fragment cache misses",
		},
		[]string{"tier"},
	)

	// Cache tier errors (encode/decode/upstream)
	FragmentCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fragment_cache_errors_total",
			Help: "Total number of fragment cache errors",
		},
		[]string{"tier", "kind"},
	)

	// Session cache occupancy
	SessionCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_cache_entries",
			Help: "Number of fragments currently held by session caches",
		},
	)

	// Resolution latency for the network path
	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "variant_resolution_duration_seconds",
			Help:    "Duration of network-served resolutions",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordResolution records a resolved selection event by outcome.
func RecordResolution(outcome string) {
	Resolutions.WithLabelValues(outcome).Inc()
}

// RecordPrefetch records a prefetch attempt by result.
func RecordPrefetch(result string) {
	Prefetches.WithLabelValues(result).Inc()
}

// RecordFragmentCacheHit records a fragment cache hit on a tier.
func RecordFragmentCacheHit(tier string) {
	FragmentCacheHits.WithLabelValues(tier).Inc()
}

// RecordFragmentCacheMiss records a fragment cache miss on a tier.
func RecordFragmentCacheMiss(tier string) {
	FragmentCacheMisses.WithLabelValues(tier).Inc()
}

// RecordFragmentCacheError records a cache tier error.
func RecordFragmentCacheError(tier, kind string) {
	FragmentCacheErrors.WithLabelValues(tier, kind).Inc()
}

// UpdateSessionCacheEntries updates the session cache occupancy gauge.
func UpdateSessionCacheEntries(count int64) {
	SessionCacheEntries.Set(float64(count))
}

// TimeResolution returns a timer function for measuring a network resolution.
func TimeResolution() func() {
	timer := prometheus.NewTimer(ResolutionDuration)
	return func() {
		timer.ObserveDuration()
	}
}
