package interfaces

//go:generate mockgen -package=mock -source=store.go -destination=mock/store.go

// FragmentStore is the contract for fragment cache implementations.
// Both the resolution controller and the prefetch scheduler write to it, so
// Put must be safe to call redundantly for a key that is already present
// (overwrite, not duplicate).
type FragmentStore interface {
	Get(key string) (fragment []byte, found bool)
	Put(key string, fragment []byte)
	// Clear empties the session-scoped entries. Called on engine stop.
	Clear()
	Len() int
}
