package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreReadAbsentIsEmpty(t *testing.T) {
	store := NewLocalStore(newMemStorage(), "visitor-1")

	items, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLocalStoreAddAndRead(t *testing.T) {
	store := NewLocalStore(newMemStorage(), "visitor-1")
	ctx := context.Background()

	added, err := store.Add(ctx, 14, "70M", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	items, err := store.Read(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(14), items[0].ProductID)
	assert.Equal(t, "70M", items[0].OptionSelection)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestLocalStoreDuplicateLinesCoexist(t *testing.T) {
	store := NewLocalStore(newMemStorage(), "visitor-1")
	ctx := context.Background()

	first, err := store.Add(ctx, 14, "70M", 1)
	require.NoError(t, err)
	second, err := store.Add(ctx, 14, "70M", 3)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	items, err := store.Read(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 3, items[1].Quantity)
}

func TestLocalStoreUpdateQuantity(t *testing.T) {
	store := NewLocalStore(newMemStorage(), "visitor-1")
	ctx := context.Background()

	added, err := store.Add(ctx, 7, "Small", 1)
	require.NoError(t, err)

	require.NoError(t, store.UpdateQuantity(ctx, added.ID, 5))

	items, err := store.Read(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestLocalStoreUpdateQuantityUnknownLine(t *testing.T) {
	store := NewLocalStore(newMemStorage(), "visitor-1")

	err := store.UpdateQuantity(context.Background(), "no-such-line", 2)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStoreRemoveAbsentIsNoop(t *testing.T) {
	store := NewLocalStore(newMemStorage(), "visitor-1")
	ctx := context.Background()

	_, err := store.Add(ctx, 7, "Small", 1)
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "no-such-line"))

	items, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestLocalStoreRemove(t *testing.T) {
	store := NewLocalStore(newMemStorage(), "visitor-1")
	ctx := context.Background()

	first, err := store.Add(ctx, 7, "Small", 1)
	require.NoError(t, err)
	_, err = store.Add(ctx, 8, "Large", 2)
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, first.ID))

	items, err := store.Read(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(8), items[0].ProductID)
}

func TestLocalStoreClear(t *testing.T) {
	store := NewLocalStore(newMemStorage(), "visitor-1")
	ctx := context.Background()

	_, err := store.Add(ctx, 7, "Small", 1)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	items, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLocalStoreCorruptBlobDiscarded(t *testing.T) {
	storage := newMemStorage()
	ctx := context.Background()
	require.NoError(t, storage.Put(ctx, "visitor-1", "guestCart", []byte("{not json")))

	store := NewLocalStore(storage, "visitor-1")
	items, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// The corrupt blob was deleted, not left to fail every later read.
	_, ok, err := storage.Get(ctx, "visitor-1", "guestCart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStoreScopesAreIsolated(t *testing.T) {
	storage := newMemStorage()
	ctx := context.Background()

	a := NewLocalStore(storage, "visitor-a")
	b := NewLocalStore(storage, "visitor-b")

	_, err := a.Add(ctx, 7, "Small", 1)
	require.NoError(t, err)

	items, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLocalStoreReadFailureIsUpstream(t *testing.T) {
	storage := newMemStorage()
	storage.failGet = true
	store := NewLocalStore(storage, "visitor-1")

	_, err := store.Read(context.Background())
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
}
