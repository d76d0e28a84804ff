package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinklake/shuttle/internal/domain/providers"
)

func TestMemoryAdapter_SetGet(t *testing.T) {
	c := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 60))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestMemoryAdapter_Expiry(t *testing.T) {
	c := NewMemoryAdapter()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10))
	ok, _ := c.Exists(ctx, "k")
	assert.True(t, ok)

	now = now.Add(11 * time.Second)
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryAdapter_DeletePattern(t *testing.T) {
	c := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "http:cache:/api/rides/track:abc", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "http:cache:/api/rides/12345/progress:def", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "http:cache:/api/faqs:ghi", []byte("1"), 0))

	require.NoError(t, c.DeletePattern(ctx, "http:cache:/api/rides*"))

	ok, _ := c.Exists(ctx, "http:cache:/api/rides/track:abc")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "http:cache:/api/rides/12345/progress:def")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "http:cache:/api/faqs:ghi")
	assert.True(t, ok)
}

func TestGlobMatch(t *testing.T) {
	assert.True(t, globMatch("http:cache:/api/rides*", "http:cache:/api/rides/1/progress:x"))
	assert.True(t, globMatch("a?c", "abc"))
	assert.True(t, globMatch("*", ""))
	assert.False(t, globMatch("a*d", "abc"))
	assert.False(t, globMatch("abc", "abcd"))
}
