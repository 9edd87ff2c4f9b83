package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
)

type SQLiteStoreSuite struct {
	suite.Suite
	ctx   context.Context
	path  string
	store *Store
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "state.db")
	store, err := Open(s.ctx, s.path)
	s.Require().NoError(err)
	s.store = store
	s.T().Cleanup(func() { _ = s.store.Close() })
}

func (s *SQLiteStoreSuite) TestApplyAndRead() {
	s.Run("missing key is ErrNotFound", func() {
		_, err := s.store.Get(s.ctx, []byte("nope"))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("upsert then delete", func() {
		s.Require().NoError(s.store.Apply(s.ctx, []kv.Write{
			{Key: []byte("a"), Value: []byte{1}},
			{Key: []byte("b"), Value: []byte{2}},
		}))
		s.Require().NoError(s.store.Apply(s.ctx, []kv.Write{
			{Key: []byte("a"), Value: []byte{7}},
			{Key: []byte("b"), Delete: true},
		}))

		got, err := s.store.Get(s.ctx, []byte("a"))
		s.Require().NoError(err)
		s.Equal([]byte{7}, got)

		ok, err := s.store.Has(s.ctx, []byte("b"))
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *SQLiteStoreSuite) TestStateSurvivesReopen() {
	s.Require().NoError(s.store.Apply(s.ctx, []kv.Write{{Key: kv.CounterKey("project_index"), Value: []byte{0, 0, 0, 3}}}))
	s.Require().NoError(s.store.Close())

	reopened, err := Open(s.ctx, s.path)
	s.Require().NoError(err)
	s.store = reopened

	n, err := kv.GetUint32(s.ctx, s.store, kv.CounterKey("project_index"))
	s.Require().NoError(err)
	s.Equal(uint32(3), n)
}
