package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	id "chocolate/pkg/domain"
	"chocolate/pkg/platform/kv"
)

type AuthorizerStoreSuite struct {
	suite.Suite
	ctx     context.Context
	backend *kv.InMemory
	batch   *kv.Batch
	store   *Store
}

func TestAuthorizerStoreSuite(t *testing.T) {
	suite.Run(t, new(AuthorizerStoreSuite))
}

func (s *AuthorizerStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = kv.NewInMemory()
	s.batch = kv.NewBatch(s.backend)
	s.store = New(s.batch)
}

func (s *AuthorizerStoreSuite) TestAdd() {
	s.Run("keeps the set sorted", func() {
		for _, b := range []byte{5, 1, 9, 3} {
			added, err := s.store.Add(s.ctx, id.AccountID{b})
			s.Require().NoError(err)
			s.True(added)
		}
		set, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Equal([]id.AccountID{{1}, {3}, {5}, {9}}, set)
	})

	s.Run("is idempotent", func() {
		s.Require().NoError(s.batch.Commit(s.ctx))
		next := kv.NewBatch(s.backend)
		added, err := New(next).Add(s.ctx, id.AccountID{3})
		s.Require().NoError(err)
		s.False(added)
		s.Zero(next.Len())
	})
}

func (s *AuthorizerStoreSuite) TestContains() {
	_, err := s.store.Add(s.ctx, id.AccountID{7})
	s.Require().NoError(err)

	ok, err := s.store.Contains(s.ctx, id.AccountID{7})
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.store.Contains(s.ctx, id.AccountID{8})
	s.Require().NoError(err)
	s.False(ok)
}

func (s *AuthorizerStoreSuite) TestEmptySet() {
	set, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(set)
}
