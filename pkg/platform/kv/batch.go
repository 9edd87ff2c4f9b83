package kv

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"chocolate/pkg/platform/sentinel"
)

// Batch stages writes over a Backend. Reads see the staged writes first and
// fall through to the backend. Nothing reaches the backend until Commit.
type Batch struct {
	mu       sync.Mutex
	base     Backend
	staged   map[string]Write
	finished bool
}

// NewBatch opens an empty batch over base.
func NewBatch(base Backend) *Batch {
	return &Batch{
		base:   base,
		staged: make(map[string]Write),
	}
}

var errBatchFinished = fmt.Errorf("kv batch already committed or discarded: %w", sentinel.ErrInvalidState)

func (b *Batch) Get(ctx context.Context, key []byte) ([]byte, error) {
	b.mu.Lock()
	w, ok := b.staged[string(key)]
	b.mu.Unlock()
	if ok {
		if w.Delete {
			return nil, fmt.Errorf("key %x: %w", key, sentinel.ErrNotFound)
		}
		return bytes.Clone(w.Value), nil
	}
	return b.base.Get(ctx, key)
}

func (b *Batch) Has(ctx context.Context, key []byte) (bool, error) {
	b.mu.Lock()
	w, ok := b.staged[string(key)]
	b.mu.Unlock()
	if ok {
		return !w.Delete, nil
	}
	return b.base.Has(ctx, key)
}

func (b *Batch) Put(_ context.Context, key, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return errBatchFinished
	}
	b.staged[string(key)] = Write{Key: bytes.Clone(key), Value: bytes.Clone(value)}
	return nil
}

func (b *Batch) Delete(_ context.Context, key []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return errBatchFinished
	}
	b.staged[string(key)] = Write{Key: bytes.Clone(key), Delete: true}
	return nil
}

// Len returns the number of staged keys.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.staged)
}

// Writes returns the staged writes ordered by key.
func (b *Batch) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedLocked()
}

func (b *Batch) sortedLocked() []Write {
	writes := make([]Write, 0, len(b.staged))
	for _, w := range b.staged {
		writes = append(writes, w)
	}
	slices.SortFunc(writes, func(x, y Write) int { return bytes.Compare(x.Key, y.Key) })
	return writes
}

// Commit applies every staged write to the backend in one Apply call.
// An empty batch commits without touching the backend.
func (b *Batch) Commit(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return errBatchFinished
	}
	b.finished = true
	if len(b.staged) == 0 {
		return nil
	}
	if err := b.base.Apply(ctx, b.sortedLocked()); err != nil {
		return fmt.Errorf("commit kv batch: %w", err)
	}
	return nil
}

// Discard drops every staged write.
func (b *Batch) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finished = true
	clear(b.staged)
}
