package models

import (
	"cmp"
	"errors"

	id "chocolate/pkg/domain"
)

var (
	// ErrReviewNotFound is returned when the account has not reviewed the project.
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewAlreadyExists is returned on a second review of the same project
	// by the same account.
	ErrReviewAlreadyExists = errors.New("review already exists")
)

// Review is immutable once stored. ID is assigned from the review_index
// counter and never depends on where the review sorts in the index.
type Review struct {
	ID        id.ReviewID  `json:"id"`
	ProjectID id.ProjectID `json:"project_id"`
	Owner     id.AccountID `json:"owner"`
	Rating    uint32       `json:"rating"`
	Body      []byte       `json:"body"`
}

// ReviewKey identifies the single review an account may leave on a project.
type ReviewKey struct {
	Owner     id.AccountID
	ProjectID id.ProjectID
}

// Compare orders keys by owner bytes, then by project id.
func (k ReviewKey) Compare(other ReviewKey) int {
	if c := k.Owner.Compare(other.Owner); c != 0 {
		return c
	}
	return cmp.Compare(k.ProjectID, other.ProjectID)
}

// IndexEntry is one element of the sorted review index.
type IndexEntry struct {
	Key      ReviewKey
	ReviewID id.ReviewID
}
