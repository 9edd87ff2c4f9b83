package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	projectModels "chocolate/internal/projects/models"
	projectStore "chocolate/internal/projects/store"
	"chocolate/internal/reviews/models"
	"chocolate/internal/reviews/service/mocks"
	"chocolate/internal/reviews/store"
	id "chocolate/pkg/domain"
	dErrors "chocolate/pkg/domain-errors"
	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
)

var (
	alice = id.AccountID{0xA1}
	bob   = id.AccountID{0xB0}
	carol = id.AccountID{0x0C}
)

type LedgerSuite struct {
	suite.Suite
	ctx      context.Context
	projects *projectStore.Store
	ledger   *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	batch := kv.NewBatch(kv.NewInMemory())
	s.projects = projectStore.New(batch)
	s.ledger = New(store.New(batch), s.projects)
}

func (s *LedgerSuite) newProject(owner id.AccountID) id.ProjectID {
	projectID, err := s.projects.Create(s.ctx, owner, nil, nil)
	s.Require().NoError(err)
	return projectID
}

// TestReviewScenario walks a project through its first review and a
// rejected duplicate.
func (s *LedgerSuite) TestReviewScenario() {
	projectID := s.newProject(alice)
	s.Require().Equal(id.ProjectID(0), projectID)

	p, err := s.projects.Get(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal(projectModels.Project{Owner: alice, Name: []byte{}, Meta: []byte{}}, p)

	_, err = s.ledger.AddReview(s.ctx, bob, 0, 10, nil)
	s.Require().NoError(err)
	p, err = s.projects.Get(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal(uint32(10), p.RatingSum)
	s.Equal(uint32(1), p.ReviewCount)

	_, err = s.ledger.AddReview(s.ctx, bob, 0, 5, nil)
	s.ErrorIs(err, models.ErrReviewAlreadyExists)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	p, err = s.projects.Get(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal(uint32(10), p.RatingSum)
	s.Equal(uint32(1), p.ReviewCount)
}

func (s *LedgerSuite) TestAddReview() {
	s.Run("unknown project", func() {
		_, err := s.ledger.AddReview(s.ctx, bob, 7, 1, nil)
		s.ErrorIs(err, projectModels.ErrProjectNotFound)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("aggregates track distinct reviewers", func() {
		projectID := s.newProject(alice)
		for i, reviewer := range []id.AccountID{alice, bob, carol} {
			_, err := s.ledger.AddReview(s.ctx, reviewer, projectID, uint32(i+1), nil)
			s.Require().NoError(err)
		}
		p, err := s.projects.Get(s.ctx, projectID)
		s.Require().NoError(err)
		s.Equal(uint32(3), p.ReviewCount)
		s.Equal(uint32(6), p.RatingSum)
	})

	s.Run("rating sum overflow is rejected", func() {
		projectID := s.newProject(alice)
		_, err := s.ledger.AddReview(s.ctx, alice, projectID, math.MaxUint32, nil)
		s.Require().NoError(err)

		_, err = s.ledger.AddReview(s.ctx, bob, projectID, 1, nil)
		s.ErrorIs(err, sentinel.ErrOverflow)
		s.True(dErrors.HasCode(err, dErrors.CodeOverflow))
	})
}

// TestReviewIDsAreStable checks that a review keeps resolving to itself after
// other reviews are inserted ahead of it in the index.
func (s *LedgerSuite) TestReviewIDsAreStable() {
	projectID := s.newProject(alice)

	_, err := s.ledger.AddReview(s.ctx, bob, projectID, 4, []byte("from bob"))
	s.Require().NoError(err)
	for owner := byte(1); owner < 0x20; owner++ {
		_, err := s.ledger.AddReview(s.ctx, id.AccountID{owner}, projectID, 1, nil)
		s.Require().NoError(err)
	}

	r, err := s.ledger.GetReview(s.ctx, projectID, bob)
	s.Require().NoError(err)
	s.Equal(id.ReviewID(0), r.ID)
	s.Equal(bob, r.Owner)
	s.Equal(uint32(4), r.Rating)
	s.Equal([]byte("from bob"), r.Body)

	r, err = s.ledger.GetReview(s.ctx, projectID, id.AccountID{0x10})
	s.Require().NoError(err)
	s.Equal(id.AccountID{0x10}, r.Owner)
}

func (s *LedgerSuite) TestGetReview() {
	projectID := s.newProject(alice)
	_, err := s.ledger.AddReview(s.ctx, bob, projectID, 3, nil)
	s.Require().NoError(err)

	s.Run("absent pair", func() {
		_, err := s.ledger.GetReview(s.ctx, projectID, carol)
		s.ErrorIs(err, models.ErrReviewNotFound)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("other project of same reviewer", func() {
		_, err := s.ledger.GetReview(s.ctx, projectID+1, bob)
		s.ErrorIs(err, models.ErrReviewNotFound)
	})
}

func (s *LedgerSuite) TestQueries() {
	p0 := s.newProject(alice)
	p1 := s.newProject(bob)
	for _, tc := range []struct {
		owner   id.AccountID
		project id.ProjectID
		rating  uint32
	}{
		{bob, p0, 5},
		{carol, p0, 2},
		{alice, p0, 4},
		{carol, p1, 1},
	} {
		_, err := s.ledger.AddReview(s.ctx, tc.owner, tc.project, tc.rating, nil)
		s.Require().NoError(err)
	}

	s.Run("reviewers are in account order", func() {
		reviewers, err := s.ledger.ReviewersForProject(s.ctx, p0)
		s.Require().NoError(err)
		s.Equal([]id.AccountID{carol, alice, bob}, reviewers)
	})

	s.Run("reviews follow the same order", func() {
		reviews, err := s.ledger.ReviewsForProject(s.ctx, p0)
		s.Require().NoError(err)
		s.Require().Len(reviews, 3)
		s.Equal([]uint32{2, 4, 5}, []uint32{reviews[0].Rating, reviews[1].Rating, reviews[2].Rating})
	})

	s.Run("projects reviewed by an account", func() {
		entries, err := s.ledger.ProjectsReviewedBy(s.ctx, carol)
		s.Require().NoError(err)
		s.Require().Len(entries, 2)
		s.Equal(p0, entries[0].ID)
		s.Equal(p1, entries[1].ID)
		s.Equal(bob, entries[1].Project.Owner)
	})

	s.Run("unreviewed project", func() {
		reviewers, err := s.ledger.ReviewersForProject(s.ctx, 9)
		s.Require().NoError(err)
		s.Empty(reviewers)
	})
}

func TestLedger_StorageFailures(t *testing.T) {
	ctx := context.Background()
	errDisk := errors.New("disk on fire")

	t.Run("project lookup failure is internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		projects := mocks.NewMockProjectAggregates(ctrl)
		reviews := mocks.NewMockReviewStore(ctrl)
		projects.EXPECT().Get(gomock.Any(), id.ProjectID(1)).Return(projectModels.Project{}, errDisk)

		_, err := New(reviews, projects).AddReview(ctx, alice, 1, 1, nil)
		if !dErrors.HasCode(err, dErrors.CodeInternal) || !errors.Is(err, errDisk) {
			t.Fatalf("expected internal error wrapping cause, got %v", err)
		}
	})

	t.Run("index save failure surfaces after staging", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		projects := mocks.NewMockProjectAggregates(ctrl)
		reviews := mocks.NewMockReviewStore(ctrl)
		gomock.InOrder(
			projects.EXPECT().Get(gomock.Any(), id.ProjectID(0)).Return(projectModels.Project{}, nil),
			reviews.EXPECT().Index(gomock.Any()).Return(store.Index{}, nil),
			projects.EXPECT().RecordReview(gomock.Any(), id.ProjectID(0), uint32(3)).Return(projectModels.Project{ReviewCount: 1, RatingSum: 3}, nil),
			reviews.EXPECT().NextID(gomock.Any()).Return(id.ReviewID(0), nil),
			reviews.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil),
			reviews.EXPECT().SaveIndex(gomock.Any(), gomock.Len(1)).Return(errDisk),
		)

		_, err := New(reviews, projects).AddReview(ctx, alice, 0, 3, nil)
		if !dErrors.HasCode(err, dErrors.CodeInternal) {
			t.Fatalf("expected internal error, got %v", err)
		}
	})
}
