package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()

	_, found, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetWithTTL(context.Background(), "key", []byte("value"), time.Minute))

	got, found, err := store.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryStore_ExpiresEntries(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.nowFunc = func() time.Time { return now }

	require.NoError(t, store.SetWithTTL(context.Background(), "key", []byte("value"), time.Minute))

	now = now.Add(59 * time.Second)
	_, found, err := store.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.True(t, found)

	now = now.Add(2 * time.Second)
	_, found, err = store.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitCacheStore_Initialize_MemoryFallback(t *testing.T) {
	init := &InitCacheStore{}

	_, err := init.Initialize(context.Background())
	require.NoError(t, err)

	_, err = depend.Resolve[domain.CacheStore]()
	assert.NoError(t, err)
}
