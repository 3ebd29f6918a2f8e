package noop

import (
	"go-variant-cache/internal/interfaces"
)

// Ensure Store implements interfaces.FragmentStore
var _ interfaces.FragmentStore = (*Store)(nil)

// Store is a no-operation fragment store standing in for disabled tiers.
type Store struct{}

// New creates a new no-operation store.
func New() interfaces.FragmentStore {
	return &Store{}
}

// Get always misses.
func (n *Store) Get(key string) ([]byte, bool) {
	return nil, false
}

// Put does nothing.
func (n *Store) Put(key string, fragment []byte) {}

// Clear does nothing.
func (n *Store) Clear() {}

// Len is always zero.
func (n *Store) Len() int {
	return 0
}
