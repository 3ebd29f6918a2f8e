package metrics

import (
	"testing"
)

func TestMetrics(t *testing.T) {
	// Metrics are package-level promauto variables; these just verify the
	// helpers don't panic on registered collectors.

	t.Run("RecordResolution", func(t *testing.T) {
		RecordResolution("cache_hit")
		RecordResolution("fetched")
		RecordResolution("superseded")
		RecordResolution("failed")
	})

	t.Run("RecordPrefetch", func(t *testing.T) {
		RecordPrefetch("completed")
		RecordPrefetch("failed")
		RecordPrefetch("skipped_cached")
	})

	t.Run("CacheCounters", func(t *testing.T) {
		RecordFragmentCacheHit("session")
		RecordFragmentCacheMiss("session")
		RecordFragmentCacheError("shared", "decode")
	})

	t.Run("SessionCacheEntries", func(t *testing.T) {
		UpdateSessionCacheEntries(12)
		UpdateSessionCacheEntries(0)
	})

	t.Run("TimeResolution", func(t *testing.T) {
		done := TimeResolution()
		done()
	})
}
