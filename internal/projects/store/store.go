// Package store persists projects and the project_index counter on a kv.Store.
package store

import (
	"context"
	"errors"
	"fmt"

	"chocolate/internal/projects/models"
	id "chocolate/pkg/domain"
	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
)

const projectPrefix = "project"

var projectIndexKey = kv.CounterKey("project_index")

func projectKey(projectID id.ProjectID) []byte {
	return kv.Uint32Key(projectPrefix, uint32(projectID))
}

// Store is bound to one kv.Store, normally the batch of the current call.
type Store struct {
	kv kv.Store
}

func New(s kv.Store) *Store {
	return &Store{kv: s}
}

// Create allocates the next project id and stores a zero-aggregate project.
func (s *Store) Create(ctx context.Context, owner id.AccountID, name, meta []byte) (id.ProjectID, error) {
	next, err := kv.GetUint32(ctx, s.kv, projectIndexKey)
	if err != nil {
		return 0, fmt.Errorf("read project index: %w", err)
	}
	after, err := id.CheckedInc(next)
	if err != nil {
		return 0, fmt.Errorf("allocate project id: %w", err)
	}

	projectID := id.ProjectID(next)
	if err := kv.PutValue(ctx, s.kv, projectKey(projectID), models.NewProject(owner, name, meta)); err != nil {
		return 0, fmt.Errorf("store project: %w", err)
	}
	if err := kv.PutUint32(ctx, s.kv, projectIndexKey, after); err != nil {
		return 0, fmt.Errorf("store project index: %w", err)
	}
	return projectID, nil
}

// Get returns models.ErrProjectNotFound for an unknown id.
func (s *Store) Get(ctx context.Context, projectID id.ProjectID) (models.Project, error) {
	p, err := kv.GetValue[models.Project](ctx, s.kv, projectKey(projectID))
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Project{}, models.ErrProjectNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("load project %d: %w", projectID, err)
	}
	return p, nil
}

// Count returns project_index, the number of projects ever created.
func (s *Store) Count(ctx context.Context) (uint32, error) {
	return kv.GetUint32(ctx, s.kv, projectIndexKey)
}

// List returns every project in id order. Ids below project_index are always
// present; a hole means the state is corrupt.
func (s *Store) List(ctx context.Context) ([]models.ProjectEntry, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("read project index: %w", err)
	}
	entries := make([]models.ProjectEntry, 0, count)
	for i := range count {
		projectID := id.ProjectID(i)
		p, err := s.Get(ctx, projectID)
		if errors.Is(err, models.ErrProjectNotFound) {
			return nil, fmt.Errorf("project %d missing below index %d: %w", i, count, sentinel.ErrInvalidState)
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.ProjectEntry{ID: projectID, Project: p})
	}
	return entries, nil
}

// RecordReview adds one review with the given rating to the project's
// aggregates. Nothing is written if either sum would overflow.
func (s *Store) RecordReview(ctx context.Context, projectID id.ProjectID, rating uint32) (models.Project, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return models.Project{}, err
	}
	count, err := id.CheckedInc(p.ReviewCount)
	if err != nil {
		return models.Project{}, fmt.Errorf("review count of project %d: %w", projectID, err)
	}
	sum, err := id.CheckedAdd(p.RatingSum, rating)
	if err != nil {
		return models.Project{}, fmt.Errorf("rating sum of project %d: %w", projectID, err)
	}
	p.ReviewCount, p.RatingSum = count, sum
	if err := kv.PutValue(ctx, s.kv, projectKey(projectID), p); err != nil {
		return models.Project{}, fmt.Errorf("store project: %w", err)
	}
	return p, nil
}
