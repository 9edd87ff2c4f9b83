// Package kv is the storage substrate the contract state lives on.
//
// Backends expose point reads and one atomic multi-key write (Apply). Contract
// calls never write to a backend directly: they stage writes in a Batch and
// the host commits the batch once the call has succeeded, so a failed call
// leaves the backend untouched.
package kv

import (
	"context"
)

// Reader is the read side shared by backends and batches.
// Get returns sentinel.ErrNotFound (possibly wrapped) for a missing key.
type Reader interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Has(ctx context.Context, key []byte) (bool, error)
}

// Store is a readable and writable key space. Batch implements it.
type Store interface {
	Reader
	Put(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
}

// Backend is a durable key space. Apply must commit every write or none.
type Backend interface {
	Reader
	Apply(ctx context.Context, writes []Write) error
	Close() error
}

// Write is one staged mutation. A nil Value with Delete set removes the key.
type Write struct {
	Key    []byte
	Value  []byte
	Delete bool
}
