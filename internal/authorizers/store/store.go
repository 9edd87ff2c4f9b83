// Package store keeps the sorted set of accounts allowed to finalize
// verifications.
package store

import (
	"context"
	"fmt"
	"slices"

	id "chocolate/pkg/domain"
	"chocolate/pkg/platform/kv"
)

var authorizersKey = kv.Key("authorizers")

type Store struct {
	kv kv.Store
}

func New(s kv.Store) *Store {
	return &Store{kv: s}
}

// Add inserts account in sort order. Adding a present account is a no-op and
// writes nothing.
func (s *Store) Add(ctx context.Context, account id.AccountID) (bool, error) {
	set, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	pos, found := slices.BinarySearchFunc(set, account, id.AccountID.Compare)
	if found {
		return false, nil
	}
	set = slices.Insert(set, pos, account)
	if err := kv.PutValue(ctx, s.kv, authorizersKey, set); err != nil {
		return false, fmt.Errorf("store authorizers: %w", err)
	}
	return true, nil
}

func (s *Store) Contains(ctx context.Context, account id.AccountID) (bool, error) {
	set, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearchFunc(set, account, id.AccountID.Compare)
	return found, nil
}

// List returns the authorizers in ascending account order.
func (s *Store) List(ctx context.Context) ([]id.AccountID, error) {
	set, err := kv.GetValueOr(ctx, s.kv, authorizersKey, []id.AccountID{})
	if err != nil {
		return nil, fmt.Errorf("load authorizers: %w", err)
	}
	return set, nil
}
