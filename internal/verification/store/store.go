// Package store persists pending verifications, the verified log and their
// counters on a kv.Store.
package store

import (
	"context"
	"errors"
	"fmt"

	"chocolate/internal/verification/models"
	id "chocolate/pkg/domain"
	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
)

const (
	pendingPrefix     = "verify"
	verifiedPrefix    = "verified"
	verifiedSetPrefix = "verified-set"
)

var (
	verificationsCountKey = kv.CounterKey("verifications_count")
	verifiedCountKey      = kv.CounterKey("verified_count")
)

func pendingKey(account id.AccountID) []byte {
	return kv.Key(pendingPrefix, account[:])
}

func verifiedSetKey(account id.AccountID) []byte {
	return kv.Key(verifiedSetPrefix, account[:])
}

type Store struct {
	kv kv.Store
}

func New(s kv.Store) *Store {
	return &Store{kv: s}
}

// Pending returns models.ErrFlowNotInitiated when account has no challenge
// outstanding.
func (s *Store) Pending(ctx context.Context, account id.AccountID) (models.VerifyDetails, error) {
	d, err := kv.GetValue[models.VerifyDetails](ctx, s.kv, pendingKey(account))
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.VerifyDetails{}, models.ErrFlowNotInitiated
	}
	if err != nil {
		return models.VerifyDetails{}, fmt.Errorf("load pending verification: %w", err)
	}
	return d, nil
}

func (s *Store) PutPending(ctx context.Context, account id.AccountID, d models.VerifyDetails) error {
	if err := kv.PutValue(ctx, s.kv, pendingKey(account), d); err != nil {
		return fmt.Errorf("store pending verification: %w", err)
	}
	return nil
}

func (s *Store) DeletePending(ctx context.Context, account id.AccountID) error {
	if err := s.kv.Delete(ctx, pendingKey(account)); err != nil {
		return fmt.Errorf("delete pending verification: %w", err)
	}
	return nil
}

// NextIndex increments verifications_count and returns the new value, so the
// first challenge ever issued has index 1.
func (s *Store) NextIndex(ctx context.Context) (uint32, error) {
	count, err := kv.GetUint32(ctx, s.kv, verificationsCountKey)
	if err != nil {
		return 0, fmt.Errorf("read verifications count: %w", err)
	}
	next, err := id.CheckedInc(count)
	if err != nil {
		return 0, fmt.Errorf("verifications count: %w", err)
	}
	if err := kv.PutUint32(ctx, s.kv, verificationsCountKey, next); err != nil {
		return 0, fmt.Errorf("store verifications count: %w", err)
	}
	return next, nil
}

func (s *Store) VerificationsCount(ctx context.Context) (uint32, error) {
	return kv.GetUint32(ctx, s.kv, verificationsCountKey)
}

// AppendVerified adds account to the verified log. The log keeps duplicates;
// the membership marker records the first position only.
func (s *Store) AppendVerified(ctx context.Context, account id.AccountID) error {
	pos, err := kv.GetUint32(ctx, s.kv, verifiedCountKey)
	if err != nil {
		return fmt.Errorf("read verified count: %w", err)
	}
	next, err := id.CheckedInc(pos)
	if err != nil {
		return fmt.Errorf("verified count: %w", err)
	}
	if err := s.kv.Put(ctx, kv.Uint32Key(verifiedPrefix, pos), account.Bytes()); err != nil {
		return fmt.Errorf("store verified account: %w", err)
	}
	if err := kv.PutUint32(ctx, s.kv, verifiedCountKey, next); err != nil {
		return fmt.Errorf("store verified count: %w", err)
	}

	seen, err := s.kv.Has(ctx, verifiedSetKey(account))
	if err != nil {
		return fmt.Errorf("read verified marker: %w", err)
	}
	if !seen {
		if err := kv.PutUint32(ctx, s.kv, verifiedSetKey(account), pos); err != nil {
			return fmt.Errorf("store verified marker: %w", err)
		}
	}
	return nil
}

// Verified returns the verified log in append order.
func (s *Store) Verified(ctx context.Context) ([]id.AccountID, error) {
	count, err := kv.GetUint32(ctx, s.kv, verifiedCountKey)
	if err != nil {
		return nil, fmt.Errorf("read verified count: %w", err)
	}
	out := make([]id.AccountID, 0, count)
	for pos := range count {
		raw, err := s.kv.Get(ctx, kv.Uint32Key(verifiedPrefix, pos))
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, fmt.Errorf("verified entry %d missing below count %d: %w", pos, count, sentinel.ErrInvalidState)
		}
		if err != nil {
			return nil, fmt.Errorf("load verified entry %d: %w", pos, err)
		}
		account, err := id.AccountIDFromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("verified entry %d: %w", pos, sentinel.ErrInvalidState)
		}
		out = append(out, account)
	}
	return out, nil
}

func (s *Store) IsVerified(ctx context.Context, account id.AccountID) (bool, error) {
	ok, err := s.kv.Has(ctx, verifiedSetKey(account))
	if err != nil {
		return false, fmt.Errorf("read verified marker: %w", err)
	}
	return ok, nil
}
