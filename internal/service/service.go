// Package service owns the per-session engine instances: each session binds
// one option model, one fragment store, one resolution controller and one
// prefetch scheduler to a live page.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/keybuilder"
	"go-variant-cache/internal/models"
	"go-variant-cache/internal/options"
	"go-variant-cache/internal/page"
	"go-variant-cache/internal/prefetch"
	"go-variant-cache/internal/resolver"
)

// StoreFactory builds a fresh fragment store for one session. The session
// tier is always new; shared tiers, when configured, are reused underneath.
type StoreFactory func() interfaces.FragmentStore

// Session is one consumer's engine instance.
type Session struct {
	ID string

	model      *options.Model
	store      interfaces.FragmentStore
	page       *page.Page
	controller *resolver.Controller
	scheduler  *prefetch.Scheduler
	preloader  *prefetch.ImagePreloader
}

// Select resolves one user selection event.
func (s *Session) Select(ctx context.Context, valueID string) error {
	return s.controller.HandleSelection(ctx, valueID)
}

// Hover signals hover intent over an option control.
func (s *Session) Hover(valueID string) {
	s.scheduler.HoverEnter(valueID)
	s.preloader.HoverEnter(valueID)
}

// HoverCancel cancels a pending hover intent.
func (s *Session) HoverCancel(valueID string) {
	s.scheduler.HoverLeave(valueID)
	s.preloader.HoverLeave(valueID)
}

// State returns the live page state.
func (s *Session) State() page.Snapshot {
	return s.page.State()
}

// CacheLen returns the number of cached fragments visible to this session.
func (s *Session) CacheLen() int {
	return s.store.Len()
}

// Stop tears the session down: pending fetches cancelled, timers cleared,
// session cache emptied.
func (s *Session) Stop() {
	s.scheduler.Stop()
	s.preloader.Stop()
	s.controller.Stop()
	s.store.Clear()
}

// Manager creates and tracks sessions.
type Manager struct {
	transport interfaces.Transport
	newStore  StoreFactory
	caps      prefetch.Capabilities
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session Manager.
func NewManager(transport interfaces.Transport, newStore StoreFactory, caps prefetch.Capabilities, logger *zap.Logger) *Manager {
	return &Manager{
		transport: transport,
		newStore:  newStore,
		caps:      caps,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Create builds a session from a parsed product and its initially rendered
// markup, starts the attach-time prefetch pass and registers the session.
func (m *Manager) Create(product models.Product, initialMarkup []byte, cardEmbed bool) (*Session, error) {
	model, err := options.NewModel(product, m.logger)
	if err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	store := m.newStore()
	pg := page.New(initialMarkup, product.URL, m.logger)
	keys := keybuilder.New()
	logger := m.logger.With(zap.String("session_id", id))

	ctrl := resolver.NewController(model, keys, store, m.transport, pg, pg, pg, cardEmbed, logger)
	sched := prefetch.NewScheduler(model, keys, store, m.transport, ctrl.BaseURL, pg.Markup, cardEmbed, m.caps, logger)
	ctrl.SetPrefetcher(sched)
	preloader := prefetch.NewImagePreloader(model, m.transport, store, m.caps, logger)

	session := &Session{
		ID:         id,
		model:      model,
		store:      store,
		page:       pg,
		controller: ctrl,
		scheduler:  sched,
		preloader:  preloader,
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	sched.Start()
	logger.Info("session created", zap.String("product_id", product.ID), zap.Bool("card_embed", cardEmbed))
	return session, nil
}

// Get looks a session up by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete stops and removes a session. Unknown ids report false.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.Stop()
	m.logger.Info("session deleted", zap.String("session_id", id))
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StopAll tears every session down, for shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
