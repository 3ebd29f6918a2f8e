package prefetch

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/metrics"
)

// Fetcher is the speculative keyed-fetch engine shared by the markup
// prefetcher and the image preloader. It fetches a key's URL at most once
// concurrently, runs the payload extractor, and caches the result. All work
// is best-effort: failures are logged and swallowed, and neither success nor
// failure is retried within the same session.
type Fetcher struct {
	transport interfaces.Transport
	store     interfaces.FragmentStore
	extract   func([]byte) ([]byte, error)
	logger    *zap.Logger

	group  singleflight.Group
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewFetcher creates a Fetcher. The key doubles as the fetch URL; extract
// turns a raw response body into the payload worth caching.
func NewFetcher(transport interfaces.Transport, store interfaces.FragmentStore, extract func([]byte) ([]byte, error), logger *zap.Logger) *Fetcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Fetcher{
		transport: transport,
		store:     store,
		extract:   extract,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		inflight:  make(map[string]struct{}),
	}
}

// Warm asynchronously fetches and caches the payload for key, unless the key
// is already cached or already being fetched.
func (f *Fetcher) Warm(key string) {
	if _, found := f.store.Get(key); found {
		metrics.RecordPrefetch("skipped_cached")
		return
	}

	f.mu.Lock()
	if f.ctx.Err() != nil {
		f.mu.Unlock()
		return
	}
	if _, busy := f.inflight[key]; busy {
		f.mu.Unlock()
		metrics.RecordPrefetch("skipped_inflight")
		return
	}
	f.inflight[key] = struct{}{}
	f.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		defer func() {
			f.mu.Lock()
			delete(f.inflight, key)
			f.mu.Unlock()
		}()

		_, err, _ := f.group.Do(key, func() (interface{}, error) {
			body, err := f.transport.Fetch(f.ctx, key)
			if err != nil {
				return nil, err
			}
			payload, err := f.extract(body)
			if err != nil {
				return nil, err
			}
			f.store.Put(key, payload)
			return nil, nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			f.logger.Warn("speculative fetch failed", zap.String("key", key), zap.Error(err))
			metrics.RecordPrefetch("failed")
			return
		}
		metrics.RecordPrefetch("completed")
	}()
}

// Wait blocks until all in-flight fetches settle.
func (f *Fetcher) Wait() {
	f.wg.Wait()
}

// Stop cancels in-flight fetches and waits for them to settle. No further
// warms are accepted afterwards.
func (f *Fetcher) Stop() {
	f.cancel()
	f.wg.Wait()
}
