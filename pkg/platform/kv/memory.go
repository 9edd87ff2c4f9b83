package kv

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"sync"

	"chocolate/pkg/platform/sentinel"
)

// InMemory is a map-backed Backend for dev mode and tests.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string][]byte)}
}

func (m *InMemory) Get(_ context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[string(key)]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, sentinel.ErrNotFound)
	}
	return bytes.Clone(v), nil
}

func (m *InMemory) Has(_ context.Context, key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[string(key)]
	return ok, nil
}

func (m *InMemory) Apply(ctx context.Context, writes []Write) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range writes {
		if w.Delete {
			delete(m.entries, string(w.Key))
			continue
		}
		m.entries[string(w.Key)] = bytes.Clone(w.Value)
	}
	return nil
}

func (m *InMemory) Close() error {
	return nil
}

// Snapshot copies the current contents, keyed by string(key).
func (m *InMemory) Snapshot() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.entries))
	for k, v := range maps.All(m.entries) {
		out[k] = bytes.Clone(v)
	}
	return out
}
