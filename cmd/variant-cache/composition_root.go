package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"go-variant-cache/internal/cache/l2"
	"go-variant-cache/internal/cache/multi"
	"go-variant-cache/internal/cache/noop"
	"go-variant-cache/internal/cache/session"
	"go-variant-cache/internal/cache/shared"
	"go-variant-cache/internal/config"
	"go-variant-cache/internal/httpserver"
	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/prefetch"
	"go-variant-cache/internal/service"
	"go-variant-cache/internal/transport"
)

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger

	// Shared cache tiers (noop when disabled)
	SharedStore interfaces.FragmentStore
	L2Store     interfaces.FragmentStore

	// Services
	Transport  interfaces.Transport
	Sessions   *service.Manager
	HTTPServer *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Shared cache tiers (bigcache, Redis)
// 4. Transport to the storefront rendering upstream
// 5. Session manager (per-session engine instances)
// 6. HTTP server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	// Initialize logger first
	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Load configuration
	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize shared cache tiers
	if err := root.initCacheTiers(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache tiers: %w", err)
	}

	// Initialize services
	if err := root.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Initialize HTTP server
	root.HTTPServer = httpserver.NewServer(root.Sessions, root.Config, root.Logger)

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("VARIANT_CACHE_CONFIG_FILE")
	if configPath == "" {
		configPath = "/app/variant_cache.yaml"
	}

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// initCacheTiers initializes the optional shared cache tiers
func (r *CompositionRoot) initCacheTiers() error {
	if r.Config.SharedCache.Enabled {
		store, err := shared.New(r.Config.SharedCache.MaxSizeMB, r.Config.GetSharedLifeWindow(), r.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize shared cache: %w", err)
		}
		r.SharedStore = store
		r.Logger.Info("Shared cache (bigcache) initialized", zap.Int("size_mb", r.Config.SharedCache.MaxSizeMB))
	} else {
		r.SharedStore = noop.New()
		r.Logger.Info("Shared cache (bigcache) disabled")
	}

	if r.Config.L2.Enabled {
		redisURL := GetRedisURL(r.Config, r.Logger)
		store, err := l2.New(redisURL, r.Config.GetL2TTL(), r.Config.GetL2ReadTimeout(), r.Logger)
		if err != nil {
			r.Logger.Warn("Failed to connect to Redis, falling back to no L2 cache",
				zap.String("redis_url", redisURL),
				zap.Error(err))
			r.L2Store = noop.New()
		} else {
			r.L2Store = store
			r.Logger.Info("Redis (L2) initialized", zap.String("redis_url", redisURL))
		}
	} else {
		r.L2Store = noop.New()
		r.Logger.Info("Redis (L2) disabled")
	}

	return nil
}

// initServices initializes the transport and the session manager
func (r *CompositionRoot) initServices() error {
	if r.Config.Transport.UpstreamURL == "" {
		return fmt.Errorf("transport.upstream_url is required")
	}

	r.Transport = transport.New(r.Config.Transport.UpstreamURL, r.Config.GetRequestTimeout(), r.Logger)

	caps := prefetch.DefaultCapabilities()
	caps.IdleAvailable = r.Config.IdleAvailable()
	caps.IdleDelay = r.Config.GetIdleDelay()
	caps.FallbackDelay = r.Config.GetFallbackDelay()
	caps.PostChangeDelay = r.Config.GetPostChangeDelay()
	caps.HoverSettleDelay = r.Config.GetHoverSettleDelay()

	r.Sessions = service.NewManager(r.Transport, r.newStore, caps, r.Logger)
	return nil
}

// newStore builds the fragment store for one session: a fresh bounded session
// tier composed with the shared tiers. Disabled tiers are noop stores, so the
// composite always reads session-first and misses through them.
func (r *CompositionRoot) newStore() interfaces.FragmentStore {
	sessionStore := session.New(r.Config.SessionCache.Capacity, r.Logger)
	tiers := []interfaces.FragmentStore{r.SharedStore, r.L2Store}
	return multi.New(sessionStore, tiers, r.Config.SharedCache.Propagate, r.Logger)
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errors []error

	// Sync logger
	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			errors = append(errors, fmt.Errorf("failed to sync logger: %w", err))
		}
	}

	// Close shared tier
	if sharedStore, ok := r.SharedStore.(*shared.Store); ok {
		if err := sharedStore.Close(); err != nil {
			errors = append(errors, fmt.Errorf("failed to close shared cache: %w", err))
		}
	}

	// Close L2 tier
	if l2Store, ok := r.L2Store.(*l2.Store); ok {
		if err := l2Store.Close(); err != nil {
			errors = append(errors, fmt.Errorf("failed to close L2 cache: %w", err))
		}
	}

	// Return first error if any
	if len(errors) > 0 {
		return errors[0]
	}

	return nil
}
