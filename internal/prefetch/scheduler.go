package prefetch

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-variant-cache/internal/fragment"
	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/metrics"
	"go-variant-cache/internal/models"
	"go-variant-cache/internal/options"
)

// Capabilities are the injected runtime traits the scheduler would otherwise
// read from ambient globals: whether idle scheduling is available and which
// clock drives the delays.
type Capabilities struct {
	Clock clock.Clock
	// IdleAvailable selects IdleDelay over FallbackDelay for the attach
	// pass. Environments without idle scheduling wait a fixed short delay
	// instead.
	IdleAvailable bool
	IdleDelay     time.Duration
	FallbackDelay time.Duration
	// PostChangeDelay is the idle window after a non-color change before
	// candidates are re-prefetched.
	PostChangeDelay time.Duration
	// HoverSettleDelay collapses rapid pointer movement across controls.
	HoverSettleDelay time.Duration
}

// DefaultCapabilities returns the production capability set.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Clock:            clock.New(),
		IdleAvailable:    true,
		IdleDelay:        200 * time.Millisecond,
		FallbackDelay:    500 * time.Millisecond,
		PostChangeDelay:  200 * time.Millisecond,
		HoverSettleDelay: 100 * time.Millisecond,
	}
}

// Scheduler decides what to fetch ahead of user action and when. It only
// ever writes to the fragment store; live page state is never touched from
// here.
type Scheduler struct {
	model   *options.Model
	keys    interfaces.KeyBuilder
	store   interfaces.FragmentStore
	fetcher *Fetcher
	caps    Capabilities
	logger  *zap.Logger

	// baseURL yields the current product URL, which moves on cross-product
	// navigation.
	baseURL func() string
	// pageSource yields the currently rendered page for the attach-time
	// snapshot.
	pageSource func() []byte
	cardEmbed  bool

	mu          sync.Mutex
	stopped     bool
	startTimer  *clock.Timer
	postTimer   *clock.Timer
	hoverTimers map[string]*clock.Timer
}

// NewScheduler creates a prefetch Scheduler over the shared fragment store.
func NewScheduler(
	model *options.Model,
	keys interfaces.KeyBuilder,
	store interfaces.FragmentStore,
	transport interfaces.Transport,
	baseURL func() string,
	pageSource func() []byte,
	cardEmbed bool,
	caps Capabilities,
	logger *zap.Logger,
) *Scheduler {
	if caps.Clock == nil {
		caps.Clock = clock.New()
	}
	return &Scheduler{
		model:       model,
		keys:        keys,
		store:       store,
		fetcher:     NewFetcher(transport, store, fragment.PrimaryRegion, logger),
		caps:        caps,
		logger:      logger,
		baseURL:     baseURL,
		pageSource:  pageSource,
		cardEmbed:   cardEmbed,
		hoverTimers: make(map[string]*clock.Timer),
	}
}

// Start schedules the attach pass: once idle (or after the fallback delay
// where idle scheduling is unavailable), snapshot the current page under the
// current selection's key, then prefetch candidates.
func (s *Scheduler) Start() {
	delay := s.caps.IdleDelay
	if !s.caps.IdleAvailable {
		delay = s.caps.FallbackDelay
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.startTimer = s.caps.Clock.AfterFunc(delay, s.snapshotAndPrefetch)
}

// AfterSelectionApplied schedules a fresh candidate pass after a short idle
// window. Called after a non-color change completes, because the available
// colors may differ for the new selection.
func (s *Scheduler) AfterSelectionApplied() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.postTimer != nil {
		s.postTimer.Stop()
	}
	s.postTimer = s.caps.Clock.AfterFunc(s.caps.PostChangeDelay, s.bulkPrefetch)
}

// HoverEnter starts the settle delay for a hover-intent over an unselected
// color control. The candidate is fetched only if the pointer stays long
// enough.
func (s *Scheduler) HoverEnter(valueID string) {
	val, err := s.model.FindValue(valueID)
	if err != nil {
		s.logger.Debug("hover on unknown value", zap.String("value_id", valueID))
		return
	}
	if s.model.DimensionKind(val.Dimension) != models.DimensionKindColor {
		return
	}
	if sel := s.model.SelectedValue(val.Dimension); sel != nil && sel.ID == val.ID {
		return
	}
	if val.Hidden {
		// Hidden controls are not interactive, but guard the bulk-pass rule
		// here too.
		metrics.RecordPrefetch("skipped_hidden")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.hoverTimers[valueID]; ok {
		t.Stop()
	}
	s.hoverTimers[valueID] = s.caps.Clock.AfterFunc(s.caps.HoverSettleDelay, func() {
		s.mu.Lock()
		delete(s.hoverTimers, valueID)
		stopped := s.stopped
		s.mu.Unlock()
		if stopped {
			return
		}

		key, err := s.keyFor(val)
		if err != nil {
			s.logger.Warn("failed to build hover prefetch key", zap.String("value_id", valueID), zap.Error(err))
			return
		}
		s.fetcher.Warm(key)
	})
}

// HoverLeave cancels the pending hover prefetch for a value, with no side
// effects, when the pointer leaves before the settle delay elapses.
func (s *Scheduler) HoverLeave(valueID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.hoverTimers[valueID]; ok {
		t.Stop()
		delete(s.hoverTimers, valueID)
	}
}

// Stop clears all pending timers and cancels in-flight prefetches.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.startTimer != nil {
		s.startTimer.Stop()
	}
	if s.postTimer != nil {
		s.postTimer.Stop()
	}
	for id, t := range s.hoverTimers {
		t.Stop()
		delete(s.hoverTimers, id)
	}
	s.mu.Unlock()

	s.fetcher.Stop()
}

// Wait blocks until in-flight prefetches settle. Exposed for callers that
// need a quiesced cache, mainly tests and drain paths.
func (s *Scheduler) Wait() {
	s.fetcher.Wait()
}

func (s *Scheduler) snapshotAndPrefetch() {
	s.snapshotCurrentPage()
	s.bulkPrefetch()
}

// snapshotCurrentPage stores the already-rendered page under the current
// selection's key so switching back to the initial state is a cache hit.
func (s *Scheduler) snapshotCurrentPage() {
	page := s.pageSource()
	if len(page) == 0 {
		return
	}

	region, err := fragment.PrimaryRegion(page)
	if err != nil {
		s.logger.Warn("cannot snapshot current page", zap.Error(err))
		return
	}

	buildCtx := models.BuildContext{BaseURL: s.baseURL(), CardEmbed: s.cardEmbed}
	key, err := s.keys.Build(s.model.Selection(), buildCtx)
	if err != nil {
		s.logger.Warn("cannot build snapshot key", zap.Error(err))
		return
	}
	s.store.Put(key, region)
}

// bulkPrefetch walks every color-dimension value and warms the eligible
// candidates.
func (s *Scheduler) bulkPrefetch() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	for _, dim := range s.model.ColorDimensions() {
		selected := s.model.SelectedValue(dim.Name)
		for i := range dim.Values {
			val := &dim.Values[i]
			if selected != nil && val.ID == selected.ID {
				continue
			}
			if val.Hidden {
				metrics.RecordPrefetch("skipped_hidden")
				continue
			}
			// A value sharing the selected color's display name is already
			// rendered; no second render is needed even under a different
			// id.
			if selected != nil && val.Label == selected.Label {
				continue
			}

			key, err := s.keyFor(val)
			if err != nil {
				s.logger.Warn("failed to build prefetch key", zap.String("value_id", val.ID), zap.Error(err))
				continue
			}
			s.fetcher.Warm(key)
		}
	}
}

// keyFor derives the candidate's key from the current selection with the
// candidate substituted into its dimension.
func (s *Scheduler) keyFor(val *models.OptionValue) (string, error) {
	base := s.baseURL()
	sel := s.model.Selection().With(val.Dimension, val.ID)
	buildCtx := models.BuildContext{
		BaseURL:      base,
		TargetValue:  val,
		CrossProduct: val.ConnectedProductURL != "" && val.ConnectedProductURL != base,
		CardEmbed:    s.cardEmbed,
	}
	return s.keys.Build(sel, buildCtx)
}
