// Package redis is a kv.Backend on Redis. Commits run as MULTI/EXEC.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
)

const defaultKeyPrefix = "chocolate:"

var applyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "chocolate_kv_redis_apply_duration_seconds",
	Help:    "Duration of Redis MULTI/EXEC commits",
	Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
})

// Store keeps every contract key under a configurable prefix.
type Store struct {
	client *redis.Client
	prefix string
}

type Option func(*Store)

// WithKeyPrefix namespaces keys so several deployments can share one Redis.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ kv.Backend = (*Store)(nil)

func (s *Store) key(k []byte) string {
	return s.prefix + string(k)
}

func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("key %q: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *Store) Has(ctx context.Context, key []byte) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Apply(ctx context.Context, writes []kv.Write) error {
	if len(writes) == 0 {
		return nil
	}
	start := time.Now()
	defer func() { applyDuration.Observe(time.Since(start).Seconds()) }()

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, w := range writes {
			if w.Delete {
				pipe.Del(ctx, s.key(w.Key))
				continue
			}
			pipe.Set(ctx, s.key(w.Key), w.Value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis apply: %w", err)
	}
	return nil
}

// Close is a no-op; the client is owned by the caller.
func (s *Store) Close() error {
	return nil
}
