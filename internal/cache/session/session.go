package session

import (
	"sync"

	"go.uber.org/zap"

	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/metrics"
)

// DefaultCapacity bounds the per-session fragment store.
const DefaultCapacity = 50

// Ensure Store implements interfaces.FragmentStore
var _ interfaces.FragmentStore = (*Store)(nil)

// Store is the session-scoped fragment cache: a bounded key->fragment map
// with strict insertion-order eviction. Reads do not promote an entry, and an
// overwrite keeps the key's original insertion slot. Entries never expire by
// time; the owning session's lifetime is short relative to upstream changes.
type Store struct {
	logger *zap.Logger

	mu       sync.Mutex
	capacity int
	entries  map[string][]byte
	order    []string // keys in insertion order, oldest first
}

// New creates a session Store with the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int, logger *zap.Logger) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		logger:   logger,
		capacity: capacity,
		entries:  make(map[string][]byte, capacity),
	}
}

// Get returns the fragment stored under key, if any.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fragment, found := s.entries[key]
	if found {
		metrics.RecordFragmentCacheHit("session")
	} else {
		metrics.RecordFragmentCacheMiss("session")
	}
	return fragment, found
}

// Put inserts the fragment under key. A key already present is overwritten in
// place. When the insertion would exceed capacity, the oldest inserted entry
// is evicted first.
func (s *Store) Put(key string, fragment []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		s.entries[key] = fragment
		return
	}

	if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
		s.logger.Debug("evicted oldest fragment", zap.String("key", oldest))
	}

	s.entries[key] = fragment
	s.order = append(s.order, key)
	metrics.UpdateSessionCacheEntries(int64(len(s.entries)))
}

// Clear empties the store. Called when the owning session stops.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string][]byte, s.capacity)
	s.order = nil
	metrics.UpdateSessionCacheEntries(0)
}

// Len returns the number of stored fragments.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
