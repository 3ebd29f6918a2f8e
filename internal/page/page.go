// Package page holds the live rendered state of one consumer's product page:
// the current markup, the externally visible address and the update events
// announced so far. It is the in-process stand-in for the browser document the
// resolution engine drives.
package page

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"go-variant-cache/internal/models"
)

// maxEvents bounds the retained event log per page.
const maxEvents = 100

// Event is one announced page update, retained for state inspection.
type Event struct {
	Kind      string `json:"kind"`
	ValueID   string `json:"value_id,omitempty"`
	VariantID string `json:"variant_id,omitempty"`
	ProductID string `json:"product_id,omitempty"`
}

// Snapshot is a point-in-time copy of the page state.
type Snapshot struct {
	Markup       string  `json:"markup"`
	Path         string  `json:"path"`
	VariantParam string  `json:"variant_param"`
	Events       []Event `json:"events"`
}

// Page implements the renderer, history and event-bus collaborators over an
// in-memory document.
type Page struct {
	logger *zap.Logger

	mu           sync.RWMutex
	markup       string
	path         string
	variantParam string
	events       []Event
}

// New creates a Page from the initially rendered markup and its address path.
func New(markup []byte, path string, logger *zap.Logger) *Page {
	return &Page{
		logger: logger,
		markup: string(markup),
		path:   path,
	}
}

// Markup returns the current document.
func (p *Page) Markup() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return []byte(p.markup)
}

// State returns a snapshot of the page.
func (p *Page) State() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	events := make([]Event, len(p.events))
	copy(events, p.events)
	return Snapshot{
		Markup:       p.markup,
		Path:         p.path,
		VariantParam: p.variantParam,
		Events:       events,
	}
}

// ReconcileRegion splices new markup over the named region of the live
// document.
func (p *Page) ReconcileRegion(region models.Region, markup []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var openTag, closeTag string
	switch region {
	case models.RegionPrimary:
		openTag, closeTag = "<main", "</main>"
	case models.RegionPicker:
		openTag, closeTag = "<variant-picker", "</variant-picker>"
	default:
		return fmt.Errorf("page: unknown region %q", region)
	}

	start := strings.Index(p.markup, openTag)
	if start < 0 {
		// A sectioned page is its own primary region.
		if region == models.RegionPrimary && !strings.Contains(p.markup, "<html") {
			p.markup = string(markup)
			return nil
		}
		return fmt.Errorf("page: live document has no %q region", region)
	}
	end := strings.Index(p.markup[start:], closeTag)
	if end < 0 {
		return fmt.Errorf("page: live document has unterminated %q region", region)
	}

	p.markup = p.markup[:start] + string(markup) + p.markup[start+end+len(closeTag):]
	return nil
}

// SetVariantParam reflects the resolved variant in the address.
func (p *Page) SetVariantParam(variantID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.variantParam = variantID
}

// ClearVariantParam removes the variant from the address.
func (p *Page) ClearVariantParam() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.variantParam = ""
}

// ReplacePath swaps the address path on cross-product navigation.
func (p *Page) ReplacePath(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = path
}

// SelectionChanged records the selection announcement.
func (p *Page) SelectionChanged(valueID string) {
	p.record(Event{Kind: "selection_changed", ValueID: valueID})
}

// VariantUpdated records the completed update announcement.
func (p *Page) VariantUpdated(event models.VariantUpdatedEvent) {
	p.record(Event{
		Kind:      "variant_updated",
		ValueID:   event.ResolvedValueID,
		VariantID: event.Payload.VariantID,
		ProductID: event.ProductID,
	})
}

func (p *Page) record(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	if len(p.events) > maxEvents {
		p.events = p.events[len(p.events)-maxEvents:]
	}
}
