package prefetch

import (
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/models"
	"go-variant-cache/internal/options"
)

// ImagePreloader warms color swatch imagery on hover intent for card embeds.
// It is a second instance of the speculative fetcher keyed by image URL, so
// it shares the markup prefetcher's debounce and dedup behavior instead of
// duplicating them.
type ImagePreloader struct {
	model   *options.Model
	fetcher *Fetcher
	caps    Capabilities
	logger  *zap.Logger

	mu          sync.Mutex
	stopped     bool
	hoverTimers map[string]*clock.Timer
}

// NewImagePreloader creates an ImagePreloader storing raw image bytes in the
// given store. The extractor is the identity: the response body is the
// payload.
func NewImagePreloader(model *options.Model, transport interfaces.Transport, store interfaces.FragmentStore, caps Capabilities, logger *zap.Logger) *ImagePreloader {
	if caps.Clock == nil {
		caps.Clock = clock.New()
	}
	identity := func(body []byte) ([]byte, error) { return body, nil }
	return &ImagePreloader{
		model:       model,
		fetcher:     NewFetcher(transport, store, identity, logger),
		caps:        caps,
		logger:      logger,
		hoverTimers: make(map[string]*clock.Timer),
	}
}

// HoverEnter starts the settle delay for a color value's representative
// image.
func (p *ImagePreloader) HoverEnter(valueID string) {
	val, err := p.model.FindValue(valueID)
	if err != nil {
		return
	}
	if p.model.DimensionKind(val.Dimension) != models.DimensionKindColor {
		return
	}
	if val.Hidden || val.ImageURL == "" {
		return
	}
	if sel := p.model.SelectedValue(val.Dimension); sel != nil && sel.ID == val.ID {
		return
	}

	imageURL := val.ImageURL

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	if t, ok := p.hoverTimers[valueID]; ok {
		t.Stop()
	}
	p.hoverTimers[valueID] = p.caps.Clock.AfterFunc(p.caps.HoverSettleDelay, func() {
		p.mu.Lock()
		delete(p.hoverTimers, valueID)
		stopped := p.stopped
		p.mu.Unlock()
		if stopped {
			return
		}
		p.fetcher.Warm(imageURL)
	})
}

// HoverLeave cancels the pending preload for a value.
func (p *ImagePreloader) HoverLeave(valueID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.hoverTimers[valueID]; ok {
		t.Stop()
		delete(p.hoverTimers, valueID)
	}
}

// Wait blocks until in-flight preloads settle.
func (p *ImagePreloader) Wait() {
	p.fetcher.Wait()
}

// Stop clears pending timers and cancels in-flight preloads.
func (p *ImagePreloader) Stop() {
	p.mu.Lock()
	p.stopped = true
	for id, t := range p.hoverTimers {
		t.Stop()
		delete(p.hoverTimers, id)
	}
	p.mu.Unlock()

	p.fetcher.Stop()
}
