package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/fooddelivery/internal/cache"
)

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fooddelivery:menu:3", cache.Key("menu", 3))
	assert.Equal(t, "fooddelivery", cache.Key())
}

func TestMemoryStoreJSONRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(time.Minute)

	type menu struct {
		Items []string `json:"items"`
	}

	var got menu
	assert.ErrorIs(t, cache.GetJSON(ctx, store, "k", &got), cache.ErrCacheMiss)

	require.NoError(t, cache.SetJSON(ctx, store, "k", menu{Items: []string{"Margherita"}}, 0))
	require.NoError(t, cache.GetJSON(ctx, store, "k", &got))
	assert.Equal(t, []string{"Margherita"}, got.Items)

	require.NoError(t, store.Delete(ctx, "k"))
	assert.ErrorIs(t, cache.GetJSON(ctx, store, "k", &got), cache.ErrCacheMiss)
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(time.Minute)

	require.NoError(t, store.Set(ctx, "short", []byte("v"), time.Nanosecond))
	time.Sleep(time.Millisecond)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestNilStoreMisses(t *testing.T) {
	t.Parallel()

	var dest map[string]any
	assert.ErrorIs(t, cache.GetJSON(context.Background(), nil, "k", &dest), cache.ErrCacheMiss)
	assert.NoError(t, cache.SetJSON(context.Background(), nil, "k", dest, 0))
}
