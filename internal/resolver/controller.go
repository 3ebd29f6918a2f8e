package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go-variant-cache/internal/fragment"
	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/metrics"
	"go-variant-cache/internal/models"
	"go-variant-cache/internal/options"
)

// State is the controller's per-consumer resolution state.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting_response"
	StateApplying         State = "applying"
)

// Prefetcher is the post-update hook into the prefetch scheduler.
type Prefetcher interface {
	AfterSelectionApplied()
}

// Controller resolves user selection events for one consumer: cache-hit vs
// network path, at most one in-flight fetch with supersede-and-cancel, and
// the apply step. Prefetches never go through here; they only write to the
// shared store.
type Controller struct {
	model     *options.Model
	keys      interfaces.KeyBuilder
	store     interfaces.FragmentStore
	transport interfaces.Transport
	renderer  interfaces.FragmentRenderer
	bus       interfaces.EventBus
	history   interfaces.History
	logger    *zap.Logger

	cardEmbed bool

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
	baseURL    string
	productID  string
	variantID  string
	prefetcher Prefetcher
}

// NewController creates a Controller for one consumer. The current product
// URL and id seed the address state; they move on cross-product navigation.
func NewController(
	model *options.Model,
	keys interfaces.KeyBuilder,
	store interfaces.FragmentStore,
	transport interfaces.Transport,
	renderer interfaces.FragmentRenderer,
	bus interfaces.EventBus,
	history interfaces.History,
	cardEmbed bool,
	logger *zap.Logger,
) *Controller {
	product := model.Product()
	return &Controller{
		model:     model,
		keys:      keys,
		store:     store,
		transport: transport,
		renderer:  renderer,
		bus:       bus,
		history:   history,
		logger:    logger,
		cardEmbed: cardEmbed,
		state:     StateIdle,
		baseURL:   product.URL,
		productID: product.ID,
	}
}

// SetPrefetcher attaches the post-update prefetch hook. Optional; a
// controller without one simply skips the post-update pass.
func (c *Controller) SetPrefetcher(p Prefetcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefetcher = p
}

// State returns the current resolution state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// BaseURL returns the current product URL.
func (c *Controller) BaseURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseURL
}

// ProductID returns the current product id.
func (c *Controller) ProductID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.productID
}

// VariantID returns the most recently resolved variant id.
func (c *Controller) VariantID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.variantID
}

// HandleSelection resolves one user selection event. Color changes with a
// warm cache apply synchronously with no network round-trip; everything else
// issues a cancellable fetch that supersedes any outstanding one.
func (c *Controller) HandleSelection(ctx context.Context, valueID string) error {
	val, err := c.model.FindValue(valueID)
	if err != nil {
		return err
	}
	if err := c.model.ApplySelection(valueID); err != nil {
		return err
	}
	colorChange := c.model.IsColorChange(valueID)
	c.bus.SelectionChanged(valueID)

	c.mu.Lock()
	base := c.baseURL
	c.mu.Unlock()
	crossProduct := val.ConnectedProductURL != "" && val.ConnectedProductURL != base

	buildCtx := models.BuildContext{
		BaseURL:      base,
		TargetValue:  val,
		CrossProduct: crossProduct,
		CardEmbed:    c.cardEmbed,
	}
	key, err := c.keys.Build(c.model.Selection(), buildCtx)
	if err != nil {
		return err
	}

	// Cached partial updates are only valid while staying on the same
	// product; crossing a combined-listing boundary may invalidate
	// unrelated page regions.
	if colorChange && !crossProduct {
		if cached, found := c.store.Get(key); found {
			return c.applyCached(cached, valueID)
		}
	}

	return c.resolve(ctx, key, valueID, colorChange, crossProduct)
}

// applyCached serves a color change from the cache: parse, apply the picker
// subtree in place, update the address. No event is emitted (the update's
// scope is self-contained) and no prefetch pass follows (the cache is warm
// by construction).
func (c *Controller) applyCached(cached []byte, valueID string) error {
	payload, err := fragment.Payload(cached)
	if err != nil {
		metrics.RecordResolution("failed")
		return err
	}
	picker, err := fragment.PickerRegion(cached)
	if err != nil {
		metrics.RecordResolution("failed")
		return err
	}

	if err := c.renderer.ReconcileRegion(models.RegionPicker, fragment.StripInitialRenderFlag(picker)); err != nil {
		metrics.RecordResolution("failed")
		return fmt.Errorf("failed to apply cached fragment: %w", err)
	}

	c.updateVariantParam(payload)
	c.mu.Lock()
	c.variantID = payload.VariantID
	c.mu.Unlock()

	metrics.RecordResolution("cache_hit")
	c.logger.Debug("selection served from cache",
		zap.String("value_id", valueID),
		zap.String("variant_id", payload.VariantID))
	return nil
}

// resolve issues a cancellable fetch for the key, superseding any pending
// one, and applies the response.
func (c *Controller) resolve(ctx context.Context, key, valueID string, colorChange, crossProduct bool) error {
	c.mu.Lock()
	if c.cancel != nil {
		// A new selection always supersedes the pending fetch.
		c.cancel()
	}
	c.generation++
	gen := c.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateAwaitingResponse
	c.mu.Unlock()
	defer cancel()

	done := metrics.TimeResolution()
	body, err := c.transport.Fetch(fetchCtx, key)
	done()

	c.mu.Lock()
	if gen != c.generation {
		// Superseded while in flight; discard whatever arrived.
		c.mu.Unlock()
		metrics.RecordResolution("superseded")
		return nil
	}
	c.cancel = nil
	if err != nil {
		c.state = StateIdle
		c.mu.Unlock()
		if errors.Is(err, context.Canceled) {
			metrics.RecordResolution("superseded")
			return nil
		}
		metrics.RecordResolution("failed")
		return fmt.Errorf("variant fetch failed: %w", err)
	}
	c.state = StateApplying
	c.mu.Unlock()

	if err := c.apply(body, key, valueID, crossProduct); err != nil {
		c.setState(StateIdle)
		metrics.RecordResolution("failed")
		return err
	}
	c.setState(StateIdle)
	metrics.RecordResolution("fetched")

	c.mu.Lock()
	prefetcher := c.prefetcher
	c.mu.Unlock()
	if !colorChange && prefetcher != nil {
		prefetcher.AfterSelectionApplied()
	}
	return nil
}

// apply caches the fetched fragment and merges it: the whole primary region
// on cross-product navigation, the picker subtree otherwise.
func (c *Controller) apply(body []byte, key, valueID string, crossProduct bool) error {
	region, err := fragment.PrimaryRegion(body)
	if err != nil {
		return err
	}
	c.store.Put(key, region)

	payload, err := fragment.Payload(region)
	if err != nil {
		return err
	}

	if crossProduct {
		stripped := fragment.StripInitialRenderFlag(region)
		if err := c.renderer.ReconcileRegion(models.RegionPrimary, stripped); err != nil {
			return fmt.Errorf("failed to apply primary region: %w", err)
		}

		c.mu.Lock()
		c.baseURL = payload.ProductURL
		c.productID = payload.ProductID
		c.variantID = payload.VariantID
		c.mu.Unlock()

		c.history.ReplacePath(payload.ProductURL)
		c.updateVariantParam(payload)
		c.bus.VariantUpdated(models.VariantUpdatedEvent{
			Payload:         payload,
			ResolvedValueID: valueID,
			SourceMarkup:    string(stripped),
			ProductID:       payload.ProductID,
			NewProduct:      &models.ProductRef{ID: payload.ProductID, URL: payload.ProductURL},
		})
		return nil
	}

	picker, err := fragment.PickerRegion(region)
	if err != nil {
		return err
	}
	stripped := fragment.StripInitialRenderFlag(picker)
	if err := c.renderer.ReconcileRegion(models.RegionPicker, stripped); err != nil {
		return fmt.Errorf("failed to apply picker region: %w", err)
	}

	c.mu.Lock()
	c.variantID = payload.VariantID
	productID := c.productID
	c.mu.Unlock()

	c.updateVariantParam(payload)
	c.bus.VariantUpdated(models.VariantUpdatedEvent{
		Payload:         payload,
		ResolvedValueID: valueID,
		SourceMarkup:    string(stripped),
		ProductID:       productID,
	})
	return nil
}

// updateVariantParam reflects the resolved variant in the address bar.
func (c *Controller) updateVariantParam(payload models.VariantPayload) {
	if payload.VariantID == "" {
		c.history.ClearVariantParam()
		return
	}
	c.history.SetVariantParam(payload.VariantID)
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Stop cancels any pending fetch. The owning session clears timers and the
// cache separately.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.state = StateIdle
}
