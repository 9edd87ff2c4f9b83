// Package service implements the review ledger: one review per account per
// project, with project aggregates kept in step.
package service

import (
	"context"
	"errors"
	"fmt"

	projectModels "chocolate/internal/projects/models"
	"chocolate/internal/reviews/models"
	"chocolate/internal/reviews/store"
	id "chocolate/pkg/domain"
	dErrors "chocolate/pkg/domain-errors"
	"chocolate/pkg/platform/sentinel"
)

//go:generate mockgen -source=ledger.go -destination=mocks/ledger-mocks.go -package=mocks

// ProjectAggregates is the narrow view of the project store the ledger needs.
type ProjectAggregates interface {
	Get(ctx context.Context, projectID id.ProjectID) (projectModels.Project, error)
	RecordReview(ctx context.Context, projectID id.ProjectID, rating uint32) (projectModels.Project, error)
}

// ReviewStore persists reviews and the index.
type ReviewStore interface {
	Index(ctx context.Context) (store.Index, error)
	SaveIndex(ctx context.Context, ix store.Index) error
	NextID(ctx context.Context) (id.ReviewID, error)
	Put(ctx context.Context, r models.Review) error
	Get(ctx context.Context, reviewID id.ReviewID) (models.Review, error)
	Load(ctx context.Context, entries []models.IndexEntry) ([]models.Review, error)
}

type Ledger struct {
	reviews  ReviewStore
	projects ProjectAggregates
}

func New(reviews ReviewStore, projects ProjectAggregates) *Ledger {
	return &Ledger{reviews: reviews, projects: projects}
}

// AddReview records caller's review of projectID and updates the project's
// aggregates. Ratings are not range-checked.
func (l *Ledger) AddReview(ctx context.Context, caller id.AccountID, projectID id.ProjectID, rating uint32, body []byte) (id.ReviewID, error) {
	if _, err := l.projects.Get(ctx, projectID); err != nil {
		return 0, translateProjectErr(err, projectID)
	}

	ix, err := l.reviews.Index(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load review index")
	}
	key := models.ReviewKey{Owner: caller, ProjectID: projectID}
	pos, found := ix.Find(key)
	if found {
		return 0, dErrors.Wrap(models.ErrReviewAlreadyExists, dErrors.CodeConflict, "review already exists")
	}

	// Aggregates first: an overflow here stops the call before anything else
	// is staged.
	if _, err := l.projects.RecordReview(ctx, projectID, rating); err != nil {
		return 0, translateProjectErr(err, projectID)
	}

	reviewID, err := l.reviews.NextID(ctx)
	if err != nil {
		return 0, translateCounterErr(err, "failed to allocate review id")
	}
	review := models.Review{
		ID:        reviewID,
		ProjectID: projectID,
		Owner:     caller,
		Rating:    rating,
		Body:      body,
	}
	if err := l.reviews.Put(ctx, review); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store review")
	}
	ix = ix.Insert(pos, models.IndexEntry{Key: key, ReviewID: reviewID})
	if err := l.reviews.SaveIndex(ctx, ix); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store review index")
	}
	return reviewID, nil
}

// GetReview returns user's review of projectID.
func (l *Ledger) GetReview(ctx context.Context, projectID id.ProjectID, user id.AccountID) (models.Review, error) {
	ix, err := l.reviews.Index(ctx)
	if err != nil {
		return models.Review{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load review index")
	}
	entry, ok := ix.Lookup(models.ReviewKey{Owner: user, ProjectID: projectID})
	if !ok {
		return models.Review{}, dErrors.Wrap(models.ErrReviewNotFound, dErrors.CodeNotFound, "review not found")
	}
	r, err := l.reviews.Get(ctx, entry.ReviewID)
	if err != nil {
		return models.Review{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load review")
	}
	return r, nil
}

// ReviewsForProject returns the project's reviews ordered by reviewer.
func (l *Ledger) ReviewsForProject(ctx context.Context, projectID id.ProjectID) ([]models.Review, error) {
	ix, err := l.reviews.Index(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load review index")
	}
	reviews, err := l.reviews.Load(ctx, ix.ForProject(projectID))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reviews")
	}
	return reviews, nil
}

// ReviewersForProject returns the accounts that reviewed the project, sorted.
func (l *Ledger) ReviewersForProject(ctx context.Context, projectID id.ProjectID) ([]id.AccountID, error) {
	ix, err := l.reviews.Index(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load review index")
	}
	entries := ix.ForProject(projectID)
	out := make([]id.AccountID, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key.Owner)
	}
	return out, nil
}

// ProjectsReviewedBy returns the projects user reviewed, in project id order.
func (l *Ledger) ProjectsReviewedBy(ctx context.Context, user id.AccountID) ([]projectModels.ProjectEntry, error) {
	ix, err := l.reviews.Index(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load review index")
	}
	entries := ix.ForOwner(user)
	out := make([]projectModels.ProjectEntry, 0, len(entries))
	for _, e := range entries {
		p, err := l.projects.Get(ctx, e.Key.ProjectID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reviewed project")
		}
		out = append(out, projectModels.ProjectEntry{ID: e.Key.ProjectID, Project: p})
	}
	return out, nil
}

func translateProjectErr(err error, projectID id.ProjectID) error {
	switch {
	case errors.Is(err, projectModels.ErrProjectNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "project not found")
	case errors.Is(err, sentinel.ErrOverflow):
		return dErrors.Wrap(err, dErrors.CodeOverflow, fmt.Sprintf("aggregates of project %d would overflow", projectID))
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access project")
	}
}

func translateCounterErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrOverflow) {
		return dErrors.Wrap(err, dErrors.CodeOverflow, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
