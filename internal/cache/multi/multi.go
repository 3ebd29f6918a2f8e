package multi

import (
	"go.uber.org/zap"

	"go-variant-cache/internal/interfaces"
)

// Ensure Store implements interfaces.FragmentStore
var _ interfaces.FragmentStore = (*Store)(nil)

// Store composes the session-scoped fragment cache with optional shared
// tiers. Reads try the session tier first, then each shared tier in order;
// writes go everywhere. Clear only empties the session tier, since shared
// tiers outlive the session.
type Store struct {
	session interfaces.FragmentStore
	tiers   []interfaces.FragmentStore
	// propagate copies shared-tier hits into the session tier so repeated
	// reads stay local.
	propagate bool
	logger    *zap.Logger
}

// New creates a composite Store over a session tier and zero or more shared
// tiers.
func New(session interfaces.FragmentStore, tiers []interfaces.FragmentStore, propagate bool, logger *zap.Logger) *Store {
	return &Store{
		session:   session,
		tiers:     tiers,
		propagate: propagate,
		logger:    logger,
	}
}

// Get retrieves a fragment from the first tier that has it.
func (m *Store) Get(key string) ([]byte, bool) {
	if fragment, found := m.session.Get(key); found {
		return fragment, true
	}

	for _, tier := range m.tiers {
		if fragment, found := tier.Get(key); found {
			if m.propagate {
				m.session.Put(key, fragment)
			}
			return fragment, true
		}
	}
	return nil, false
}

// Put stores a fragment in every tier.
func (m *Store) Put(key string, fragment []byte) {
	m.session.Put(key, fragment)
	for _, tier := range m.tiers {
		tier.Put(key, fragment)
	}
}

// Clear empties the session tier only.
func (m *Store) Clear() {
	m.session.Clear()
}

// Len returns the session tier's entry count.
func (m *Store) Len() int {
	return m.session.Len()
}
