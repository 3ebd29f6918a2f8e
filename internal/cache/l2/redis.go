package l2

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/metrics"
)

// Ensure Store implements interfaces.FragmentStore
var _ interfaces.FragmentStore = (*Store)(nil)

// Store is an optional Redis/KeyDB fragment tier for multi-instance
// deployments. All failures degrade to cache misses.
type Store struct {
	client      *redis.Client
	ttl         time.Duration
	readTimeout time.Duration
	logger      *zap.Logger
}

// New connects to Redis at the given URL and verifies the connection with a
// ping before returning the store.
func New(redisURL string, ttl, readTimeout time.Duration, logger *zap.Logger) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Store{
		client:      client,
		ttl:         ttl,
		readTimeout: readTimeout,
		logger:      logger,
	}, nil
}

// Get retrieves a fragment from Redis.
func (s *Store) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.readTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Error("L2 cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordFragmentCacheError("l2", "upstream")
		}
		metrics.RecordFragmentCacheMiss("l2")
		return nil, false
	}
	metrics.RecordFragmentCacheHit("l2")
	return data, true
}

// Put stores a fragment in Redis with the configured TTL.
func (s *Store) Put(key string, fragment []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.readTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, fragment, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to set L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordFragmentCacheError("l2", "upstream")
	}
}

// Clear is a no-op: the L2 tier is shared across sessions and instances.
func (s *Store) Clear() {}

// Len is not tracked for the remote tier.
func (s *Store) Len() int {
	return 0
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
