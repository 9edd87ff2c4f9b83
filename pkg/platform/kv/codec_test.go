package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chocolate/pkg/platform/sentinel"
)

type record struct {
	Name  string
	Count uint32
	Tags  [4]byte
}

func TestTypedValues(t *testing.T) {
	ctx := context.Background()
	store := NewBatch(NewInMemory())

	t.Run("missing value is ErrNotFound", func(t *testing.T) {
		_, err := GetValue[record](ctx, store, []byte("r"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("missing value falls back", func(t *testing.T) {
		got, err := GetValueOr(ctx, store, []byte("r"), record{Name: "default"})
		require.NoError(t, err)
		assert.Equal(t, "default", got.Name)
	})

	t.Run("stored value decodes", func(t *testing.T) {
		want := record{Name: "choc", Count: 3, Tags: [4]byte{1, 2, 3, 4}}
		require.NoError(t, PutValue(ctx, store, []byte("r"), want))

		got, err := GetValue[record](ctx, store, []byte("r"))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("encoding is deterministic", func(t *testing.T) {
		a, err := Marshal(map[string]uint32{"b": 2, "a": 1, "c": 3})
		require.NoError(t, err)
		b, err := Marshal(map[string]uint32{"c": 3, "a": 1, "b": 2})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	store := NewBatch(NewInMemory())
	key := CounterKey("project_index")

	n, err := GetUint32(ctx, store, key)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, PutUint32(ctx, store, key, 258))
	raw, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1, 2}, raw)

	n, err = GetUint32(ctx, store, key)
	require.NoError(t, err)
	assert.Equal(t, uint32(258), n)

	require.NoError(t, store.Put(ctx, key, []byte{1}))
	_, err = GetUint32(ctx, store, key)
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []byte("counter/project_index"), CounterKey("project_index"))
	assert.Equal(t, []byte{'p', '/', 0, 0, 0, 7}, Uint32Key("p", 7))
	assert.Equal(t, []byte("verify/ab"), Key("verify", []byte("a"), []byte("b")))
}
