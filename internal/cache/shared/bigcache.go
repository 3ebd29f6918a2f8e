package shared

import (
	"context"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/metrics"
)

// Ensure Store implements interfaces.FragmentStore
var _ interfaces.FragmentStore = (*Store)(nil)

// Store is an optional cross-session fragment tier backed by BigCache.
// Unlike the session store it is byte-bounded and time-evicted; the strict
// FIFO capacity invariant belongs to the session tier alone.
type Store struct {
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// New creates a shared Store sized in megabytes with the given entry
// lifetime.
func New(sizeMB int, lifeWindow time.Duration, logger *zap.Logger) (*Store, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.HardMaxCacheSize = sizeMB
	cfg.Verbose = false
	cfg.MaxEntrySize = 1024 * 1024

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	return &Store{cache: cache, logger: logger}, nil
}

// Get retrieves a fragment from the shared tier.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := s.cache.Get(key)
	if err != nil {
		metrics.RecordFragmentCacheMiss("shared")
		return nil, false
	}
	metrics.RecordFragmentCacheHit("shared")
	return data, true
}

// Put stores a fragment in the shared tier.
func (s *Store) Put(key string, fragment []byte) {
	if err := s.cache.Set(key, fragment); err != nil {
		s.logger.Error("Failed to set shared cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordFragmentCacheError("shared", "upstream")
	}
}

// Clear is a no-op: the shared tier outlives individual sessions, so a
// session stopping must not wipe fragments other sessions rely on.
func (s *Store) Clear() {}

// Len returns the number of entries currently held.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Close releases the underlying cache.
func (s *Store) Close() error {
	return s.cache.Close()
}
