// Package store persists reviews, the review index and the review_index
// counter on a kv.Store.
package store

import (
	"context"
	"errors"
	"fmt"

	"chocolate/internal/reviews/models"
	id "chocolate/pkg/domain"
	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
)

const reviewPrefix = "review"

var (
	indexKey       = kv.Key("review-keys")
	reviewIndexKey = kv.CounterKey("review_index")
)

func reviewKey(reviewID id.ReviewID) []byte {
	return kv.Uint32Key(reviewPrefix, uint32(reviewID))
}

type Store struct {
	kv kv.Store
}

func New(s kv.Store) *Store {
	return &Store{kv: s}
}

// Index loads the review index. A fresh ledger has an empty index.
func (s *Store) Index(ctx context.Context) (Index, error) {
	ix, err := kv.GetValueOr(ctx, s.kv, indexKey, Index{})
	if err != nil {
		return nil, fmt.Errorf("load review index: %w", err)
	}
	return ix, nil
}

func (s *Store) SaveIndex(ctx context.Context, ix Index) error {
	if err := kv.PutValue(ctx, s.kv, indexKey, ix); err != nil {
		return fmt.Errorf("store review index: %w", err)
	}
	return nil
}

// NextID allocates a review id. The counter only advances in s, so a
// discarded batch allocates nothing.
func (s *Store) NextID(ctx context.Context) (id.ReviewID, error) {
	next, err := kv.GetUint32(ctx, s.kv, reviewIndexKey)
	if err != nil {
		return 0, fmt.Errorf("read review index: %w", err)
	}
	after, err := id.CheckedInc(next)
	if err != nil {
		return 0, fmt.Errorf("allocate review id: %w", err)
	}
	if err := kv.PutUint32(ctx, s.kv, reviewIndexKey, after); err != nil {
		return 0, fmt.Errorf("store review index: %w", err)
	}
	return id.ReviewID(next), nil
}

func (s *Store) Put(ctx context.Context, r models.Review) error {
	if r.Body == nil {
		r.Body = []byte{}
	}
	if err := kv.PutValue(ctx, s.kv, reviewKey(r.ID), r); err != nil {
		return fmt.Errorf("store review %d: %w", r.ID, err)
	}
	return nil
}

// Get loads a review by id. A missing record behind an index entry is
// reported as corrupt state, not as ErrReviewNotFound.
func (s *Store) Get(ctx context.Context, reviewID id.ReviewID) (models.Review, error) {
	r, err := kv.GetValue[models.Review](ctx, s.kv, reviewKey(reviewID))
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Review{}, fmt.Errorf("review %d is indexed but missing: %w", reviewID, sentinel.ErrInvalidState)
	}
	if err != nil {
		return models.Review{}, fmt.Errorf("load review %d: %w", reviewID, err)
	}
	return r, nil
}

// Load resolves a set of index entries to their reviews, preserving order.
func (s *Store) Load(ctx context.Context, entries []models.IndexEntry) ([]models.Review, error) {
	out := make([]models.Review, 0, len(entries))
	for _, e := range entries {
		r, err := s.Get(ctx, e.ReviewID)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
