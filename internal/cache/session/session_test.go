package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStore_PutGet(t *testing.T) {
	s := New(4, zap.NewNop())

	s.Put("a", []byte("fragment-a"))

	val, found := s.Get("a")
	assert.True(t, found)
	assert.Equal(t, []byte("fragment-a"), val)

	_, found = s.Get("missing")
	assert.False(t, found)
}

func TestStore_NeverExceedsCapacity(t *testing.T) {
	const capacity = 50
	s := New(capacity, zap.NewNop())

	for i := 0; i < capacity+20; i++ {
		s.Put(fmt.Sprintf("key-%d", i), []byte("x"))
		assert.LessOrEqual(t, s.Len(), capacity)
	}
	assert.Equal(t, capacity, s.Len())
}

func TestStore_EvictsOldestInserted(t *testing.T) {
	s := New(3, zap.NewNop())

	s.Put("a", []byte("1"))
	s.Put("b", []byte("2"))
	s.Put("c", []byte("3"))

	// Inserting a fourth distinct key evicts exactly the oldest entry and
	// leaves the others addressable.
	s.Put("d", []byte("4"))

	_, found := s.Get("a")
	assert.False(t, found, "oldest entry should be evicted")
	for _, key := range []string{"b", "c", "d"} {
		_, found := s.Get(key)
		assert.True(t, found, "entry %q should survive", key)
	}
	assert.Equal(t, 3, s.Len())
}

func TestStore_NoReadPromotion(t *testing.T) {
	s := New(2, zap.NewNop())

	s.Put("a", []byte("1"))
	s.Put("b", []byte("2"))

	// Reading "a" must not promote it: eviction is by insertion order only.
	_, _ = s.Get("a")
	s.Put("c", []byte("3"))

	_, found := s.Get("a")
	assert.False(t, found, "read must not protect the oldest entry")
	_, found = s.Get("b")
	assert.True(t, found)
}

func TestStore_OverwriteKeepsInsertionSlot(t *testing.T) {
	s := New(2, zap.NewNop())

	s.Put("a", []byte("1"))
	s.Put("b", []byte("2"))
	s.Put("a", []byte("updated"))

	assert.Equal(t, 2, s.Len(), "overwrite must not duplicate")

	val, found := s.Get("a")
	assert.True(t, found)
	assert.Equal(t, []byte("updated"), val)

	// "a" keeps its original slot, so it is still the eviction candidate.
	s.Put("c", []byte("3"))
	_, found = s.Get("a")
	assert.False(t, found)
}

func TestStore_Clear(t *testing.T) {
	s := New(3, zap.NewNop())

	s.Put("a", []byte("1"))
	s.Put("b", []byte("2"))
	s.Clear()

	assert.Equal(t, 0, s.Len())
	_, found := s.Get("a")
	assert.False(t, found)

	// Store stays usable after clearing.
	s.Put("c", []byte("3"))
	_, found = s.Get("c")
	assert.True(t, found)
}

func TestStore_DefaultCapacity(t *testing.T) {
	s := New(0, zap.NewNop())
	assert.Equal(t, DefaultCapacity, s.capacity)
}
