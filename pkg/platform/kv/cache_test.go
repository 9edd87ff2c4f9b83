package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"chocolate/pkg/platform/sentinel"
)

type countingBackend struct {
	*InMemory
	gets      int
	failApply bool
}

func (c *countingBackend) Apply(ctx context.Context, writes []Write) error {
	if c.failApply {
		return errApply
	}
	return c.InMemory.Apply(ctx, writes)
}

func (c *countingBackend) Get(ctx context.Context, key []byte) ([]byte, error) {
	c.gets++
	return c.InMemory.Get(ctx, key)
}

type CachedSuite struct {
	suite.Suite
	ctx     context.Context
	backend *countingBackend
	cached  *Cached
}

func TestCachedSuite(t *testing.T) {
	suite.Run(t, new(CachedSuite))
}

func (s *CachedSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = &countingBackend{InMemory: NewInMemory()}
	cached, err := NewCached(s.backend, 16)
	s.Require().NoError(err)
	s.cached = cached
}

func (s *CachedSuite) TestReadThrough() {
	s.Require().NoError(s.backend.Apply(s.ctx, []Write{{Key: []byte("a"), Value: []byte("1")}}))

	for range 3 {
		got, err := s.cached.Get(s.ctx, []byte("a"))
		s.Require().NoError(err)
		s.Equal([]byte("1"), got)
	}
	s.Equal(1, s.backend.gets)
}

func (s *CachedSuite) TestMissesAreCached() {
	_, err := s.cached.Get(s.ctx, []byte("nope"))
	s.ErrorIs(err, sentinel.ErrNotFound)
	ok, err := s.cached.Has(s.ctx, []byte("nope"))
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(1, s.backend.gets)
}

func (s *CachedSuite) TestApplyRefreshesEntries() {
	s.Require().NoError(s.cached.Apply(s.ctx, []Write{{Key: []byte("a"), Value: []byte("1")}}))
	got, err := s.cached.Get(s.ctx, []byte("a"))
	s.Require().NoError(err)
	s.Equal([]byte("1"), got)
	s.Zero(s.backend.gets)

	s.Require().NoError(s.cached.Apply(s.ctx, []Write{{Key: []byte("a"), Delete: true}}))
	_, err = s.cached.Get(s.ctx, []byte("a"))
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.Zero(s.backend.gets)
}

func (s *CachedSuite) TestFailedApplyEvicts() {
	s.Require().NoError(s.backend.Apply(s.ctx, []Write{{Key: []byte("a"), Value: []byte("1")}}))
	_, err := s.cached.Get(s.ctx, []byte("a"))
	s.Require().NoError(err)
	s.Equal(1, s.backend.gets)

	s.backend.failApply = true
	err = s.cached.Apply(s.ctx, []Write{{Key: []byte("a"), Value: []byte("2")}})
	s.ErrorIs(err, errApply)

	got, err := s.cached.Get(s.ctx, []byte("a"))
	s.Require().NoError(err)
	s.Equal([]byte("1"), got)
	s.Equal(2, s.backend.gets)
}
