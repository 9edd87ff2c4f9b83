package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"chocolate/pkg/platform/sentinel"
)

type cacheEntry struct {
	value   []byte
	present bool
}

// Cached is a read-through LRU cache in front of a Backend. It assumes it is
// the only writer of the backend; writes made by other processes are not seen
// until the entry is evicted.
type Cached struct {
	base  Backend
	cache *lru.Cache

	mu  sync.Mutex
	gen uint64
}

// NewCached wraps base with an LRU of size entries.
func NewCached(base Backend, size int) (*Cached, error) {
	if base == nil {
		return nil, fmt.Errorf("kv backend is required")
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &Cached{base: base, cache: cache}, nil
}

func (c *Cached) lookup(ctx context.Context, key []byte) (cacheEntry, error) {
	if v, ok := c.cache.Get(string(key)); ok {
		return v.(cacheEntry), nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	raw, err := c.base.Get(ctx, key)
	var entry cacheEntry
	switch {
	case err == nil:
		entry = cacheEntry{value: raw, present: true}
	case errors.Is(err, sentinel.ErrNotFound):
		entry = cacheEntry{}
	default:
		return cacheEntry{}, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.cache.Add(string(key), entry)
	}
	c.mu.Unlock()
	return entry, nil
}

func (c *Cached) Get(ctx context.Context, key []byte) ([]byte, error) {
	entry, err := c.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if !entry.present {
		return nil, fmt.Errorf("key %q: %w", key, sentinel.ErrNotFound)
	}
	return bytes.Clone(entry.value), nil
}

func (c *Cached) Has(ctx context.Context, key []byte) (bool, error) {
	entry, err := c.lookup(ctx, key)
	if err != nil {
		return false, err
	}
	return entry.present, nil
}

// Apply writes through to the backend. Written keys are refreshed on success
// and evicted on failure, since a failed Apply leaves their state unknown.
func (c *Cached) Apply(ctx context.Context, writes []Write) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++

	if err := c.base.Apply(ctx, writes); err != nil {
		for _, w := range writes {
			c.cache.Remove(string(w.Key))
		}
		return err
	}
	for _, w := range writes {
		if w.Delete {
			c.cache.Add(string(w.Key), cacheEntry{})
			continue
		}
		c.cache.Add(string(w.Key), cacheEntry{value: bytes.Clone(w.Value), present: true})
	}
	return nil
}

// Len returns the number of cached keys.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func (c *Cached) Close() error {
	c.cache.Purge()
	return c.base.Close()
}
