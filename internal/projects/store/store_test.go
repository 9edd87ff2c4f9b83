package store

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"chocolate/internal/projects/models"
	id "chocolate/pkg/domain"
	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
)

type ProjectStoreSuite struct {
	suite.Suite
	ctx   context.Context
	batch *kv.Batch
	store *Store
	owner id.AccountID
}

func TestProjectStoreSuite(t *testing.T) {
	suite.Run(t, new(ProjectStoreSuite))
}

func (s *ProjectStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.batch = kv.NewBatch(kv.NewInMemory())
	s.store = New(s.batch)
	s.owner = id.AccountID{1}
}

// TestIDAllocation verifies ids start at 0 and increase without gaps.
func (s *ProjectStoreSuite) TestIDAllocation() {
	for want := range 5 {
		got, err := s.store.Create(s.ctx, s.owner, []byte("p"), nil)
		s.Require().NoError(err)
		s.Equal(id.ProjectID(want), got)
	}
	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint32(5), count)
}

func (s *ProjectStoreSuite) TestCreateAndGet() {
	s.Run("new project has zeroed aggregates", func() {
		projectID, err := s.store.Create(s.ctx, s.owner, []byte("CHOC"), nil)
		s.Require().NoError(err)

		p, err := s.store.Get(s.ctx, projectID)
		s.Require().NoError(err)
		s.Equal(models.Project{
			ReviewCount: 0,
			RatingSum:   0,
			Owner:       s.owner,
			Name:        []byte("CHOC"),
			Meta:        []byte{},
		}, p)
	})

	s.Run("unknown id is ErrProjectNotFound", func() {
		_, err := s.store.Get(s.ctx, 99)
		s.ErrorIs(err, models.ErrProjectNotFound)
	})
}

func (s *ProjectStoreSuite) TestList() {
	s.Run("empty registry lists nothing", func() {
		entries, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Empty(entries)
	})

	s.Run("lists in id order with owners", func() {
		other := id.AccountID{2}
		_, err := s.store.Create(s.ctx, s.owner, []byte("a"), []byte{1})
		s.Require().NoError(err)
		_, err = s.store.Create(s.ctx, other, []byte("b"), []byte{2})
		s.Require().NoError(err)

		entries, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(entries, 2)
		s.Equal(id.ProjectID(0), entries[0].ID)
		s.Equal(s.owner, entries[0].Project.Owner)
		s.Equal(id.ProjectID(1), entries[1].ID)
		s.Equal(other, entries[1].Project.Owner)
	})

	s.Run("hole below the index is reported", func() {
		s.Require().NoError(s.batch.Delete(s.ctx, projectKey(0)))
		_, err := s.store.List(s.ctx)
		s.ErrorIs(err, sentinel.ErrInvalidState)
	})
}

func (s *ProjectStoreSuite) TestRecordReview() {
	projectID, err := s.store.Create(s.ctx, s.owner, nil, nil)
	s.Require().NoError(err)

	s.Run("accumulates count and sum", func() {
		_, err := s.store.RecordReview(s.ctx, projectID, 10)
		s.Require().NoError(err)
		p, err := s.store.RecordReview(s.ctx, projectID, 5)
		s.Require().NoError(err)
		s.Equal(uint32(2), p.ReviewCount)
		s.Equal(uint32(15), p.RatingSum)
	})

	s.Run("overflowing rating writes nothing", func() {
		_, err := s.store.RecordReview(s.ctx, projectID, math.MaxUint32)
		s.ErrorIs(err, sentinel.ErrOverflow)

		p, err := s.store.Get(s.ctx, projectID)
		s.Require().NoError(err)
		s.Equal(uint32(2), p.ReviewCount)
		s.Equal(uint32(15), p.RatingSum)
	})

	s.Run("unknown project", func() {
		_, err := s.store.RecordReview(s.ctx, 42, 1)
		s.ErrorIs(err, models.ErrProjectNotFound)
	})
}

func (s *ProjectStoreSuite) TestCreateFailsWhenIndexExhausted() {
	s.Require().NoError(kv.PutUint32(s.ctx, s.batch, projectIndexKey, math.MaxUint32))
	_, err := s.store.Create(s.ctx, s.owner, nil, nil)
	s.ErrorIs(err, sentinel.ErrOverflow)
}
