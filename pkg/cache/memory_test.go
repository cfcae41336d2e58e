package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(&Options{
		DefaultTTL:      time.Minute,
		MaxEntries:      100,
		CleanupInterval: 10 * time.Millisecond,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", []byte("v1"), 0))

	got, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCacheReturnsCopy(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	original := []byte("payload")
	require.NoError(t, c.Set(ctx, "k", original, 0))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), again)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), 20*time.Millisecond))

	ok, err := c.Exists(ctx, "short")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCacheEviction(t *testing.T) {
	c := NewMemoryCache(&Options{
		DefaultTTL:      time.Minute,
		MaxEntries:      10,
		CleanupInterval: time.Minute,
	})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0))
	}

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.TotalKeys, int64(10))
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemoryCache(&Options{
		DefaultTTL:      time.Minute,
		MaxEntries:      3,
		CleanupInterval: time.Minute,
	})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))

	// Обращение освежает запись: жертвой становится "b"
	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "d", []byte("4"), 0))

	for key, want := range map[string]bool{"a": true, "b": false, "c": true, "d": true} {
		ok, err := c.Exists(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "key %s", key)
	}
}

func TestMemoryCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewMemoryCache(&Options{
		DefaultTTL:      time.Minute,
		MaxEntries:      2,
		CleanupInterval: time.Minute,
	})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	// Перезапись существующего ключа не трогает соседей
	require.NoError(t, c.Set(ctx, "a", []byte("1x"), 0))

	ok, err := c.Exists(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1x"), got)
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, c.Clear(ctx))
	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalKeys)
}

func TestMemoryCacheStats(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "nope")

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 1e-9)
	assert.Equal(t, BackendMemory, stats.Backend)
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(nil)
	require.NoError(t, c.Close())
	// Повторное закрытие безопасно
	require.NoError(t, c.Close())

	ctx := context.Background()
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
	assert.ErrorIs(t, c.Set(ctx, "k", nil, 0), ErrCacheClosed)
}

func TestNewSelectsBackend(t *testing.T) {
	c, err := New(&Options{Backend: BackendMemory})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
}
