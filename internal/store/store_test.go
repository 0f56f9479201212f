package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzaytsev/vocab-api/internal/store"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()

	require.NoError(t, kv.Set(ctx, store.KeyTheme, []byte("dark")))

	value, err := kv.Get(ctx, store.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, []byte("dark"), value)
}

func TestMemoryKVGetMissingKey(t *testing.T) {
	t.Parallel()
	kv := store.NewMemoryKV()

	_, err := kv.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestMemoryKVRemoveIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()

	require.NoError(t, kv.Set(ctx, store.KeyTheme, []byte("light")))
	require.NoError(t, kv.Remove(ctx, store.KeyTheme))
	require.NoError(t, kv.Remove(ctx, store.KeyTheme), "removing an absent key must not fail")

	_, err := kv.Get(ctx, store.KeyTheme)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestMemoryKVCopiesValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()

	original := []byte("light")
	require.NoError(t, kv.Set(ctx, store.KeyTheme, original))
	original[0] = 'X'

	value, err := kv.Get(ctx, store.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, []byte("light"), value, "stored value must not alias the caller's slice")
}

func TestMemoryKVClosed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Close())

	_, err := kv.Get(ctx, store.KeyTheme)
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, kv.Set(ctx, store.KeyTheme, nil), store.ErrClosed)
	assert.ErrorIs(t, kv.Remove(ctx, store.KeyTheme), store.ErrClosed)
}
