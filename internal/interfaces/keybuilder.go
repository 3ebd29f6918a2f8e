package interfaces

import (
	"go-variant-cache/internal/models"
)

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyBuilder canonizes an option selection plus its context into a
// deterministic request URL. The URL doubles as the cache key: two selections
// that normalize to the same key are cache-equivalent regardless of input
// order.
type KeyBuilder interface {
	Build(selection models.OptionSelection, buildCtx models.BuildContext) (string, error)
}
