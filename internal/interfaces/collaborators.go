package interfaces

import (
	"go-variant-cache/internal/models"
)

//go:generate mockgen -package=mock -source=collaborators.go -destination=mock/collaborators.go

// FragmentRenderer reconciles new markup into a live page region. The engine
// never touches presentation state beyond choosing which fragment to hand
// over.
type FragmentRenderer interface {
	ReconcileRegion(region models.Region, markup []byte) error
}

// EventBus announces completed updates to other page regions. No event is
// emitted for cache-served updates whose scope is self-contained within the
// variant picker.
type EventBus interface {
	SelectionChanged(valueID string)
	VariantUpdated(event models.VariantUpdatedEvent)
}

// History updates the externally visible address without a full reload.
type History interface {
	SetVariantParam(variantID string)
	ClearVariantParam()
	ReplacePath(path string)
}
