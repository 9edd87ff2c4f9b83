//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "chocolate/pkg/domain"
	audit "chocolate/pkg/platform/audit"
	"chocolate/pkg/testutil/containers"
)

type AuditStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *Store
}

func TestAuditStoreSuite(t *testing.T) {
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = New(s.postgres.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *AuditStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_events"))
}

func (s *AuditStoreSuite) event(actor id.AccountID, action audit.Action, at time.Time) audit.Event {
	return audit.Event{
		ID:        uuid.New(),
		Category:  action.Category(),
		Action:    action,
		Actor:     actor,
		Subject:   "0",
		Timestamp: at,
	}
}

func (s *AuditStoreSuite) TestAppendAndList() {
	ctx := context.Background()
	alice, bob := id.AccountID{1}, id.AccountID{2}
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first := s.event(alice, audit.ActionProjectAdded, base)
	s.Require().NoError(s.store.Append(ctx, first))
	s.Require().NoError(s.store.Append(ctx, s.event(bob, audit.ActionReviewAdded, base.Add(time.Second))))
	s.Require().NoError(s.store.Append(ctx, s.event(alice, audit.ActionReviewAdded, base.Add(2*time.Second))))

	s.Run("by actor oldest first", func() {
		events, err := s.store.ListByActor(ctx, alice)
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal(first.ID, events[0].ID)
		s.Equal(alice, events[0].Actor)
		s.Equal(base, events[0].Timestamp)
	})

	s.Run("recent newest first", func() {
		events, err := s.store.ListRecent(ctx, 2)
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal(audit.ActionReviewAdded, events[0].Action)
		s.Equal(alice, events[0].Actor)
	})

	s.Run("redelivery is ignored", func() {
		s.Require().NoError(s.store.Append(ctx, first))
		events, err := s.store.ListByActor(ctx, alice)
		s.Require().NoError(err)
		s.Len(events, 2)
	})
}
