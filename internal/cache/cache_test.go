package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faisalali0159/besofy/internal/cache"
	"github.com/Faisalali0159/besofy/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.RedisArticleCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisArticleCache(client, ttl), mr
}

func TestRedisArticleCache(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []domain.ArticleSummary{
		{ID: "a", Title: "Alpha", Excerpt: "first", Category: domain.CategoryCrypto, CreatedAt: created},
		{ID: "b", Title: "Beta", Excerpt: "second", Category: "forex", CreatedAt: created.Add(time.Hour), ImageURL: "/img.png"},
	}

	t.Run("miss on empty cache", func(t *testing.T) {
		c, _ := newTestCache(t, time.Minute)

		got, ok, err := c.GetPublished(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("set then get returns same items", func(t *testing.T) {
		c, _ := newTestCache(t, time.Minute)

		require.NoError(t, c.SetPublished(ctx, 0, items))

		got, ok, err := c.GetPublished(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, items, got)
	})

	t.Run("empty list is a hit", func(t *testing.T) {
		c, _ := newTestCache(t, time.Minute)

		require.NoError(t, c.SetPublished(ctx, 0, []domain.ArticleSummary{}))

		got, ok, err := c.GetPublished(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		c, mr := newTestCache(t, 30*time.Second)

		require.NoError(t, c.SetPublished(ctx, 0, items))
		mr.FastForward(31 * time.Second)

		_, ok, err := c.GetPublished(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate removes entry", func(t *testing.T) {
		c, mr := newTestCache(t, time.Minute)

		require.NoError(t, c.SetPublished(ctx, 0, items))
		require.NoError(t, c.Invalidate(ctx))

		assert.False(t, mr.Exists(cache.PublishedKey))
		_, ok, err := c.GetPublished(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate bumps the generation", func(t *testing.T) {
		c, _ := newTestCache(t, time.Minute)

		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), gen)

		require.NoError(t, c.Invalidate(ctx))
		require.NoError(t, c.Invalidate(ctx))

		gen, err = c.Generation(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), gen)
	})

	t.Run("fill from an older generation is rejected", func(t *testing.T) {
		c, mr := newTestCache(t, time.Minute)

		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(ctx))

		err = c.SetPublished(ctx, gen, items)

		assert.ErrorIs(t, err, cache.ErrStale)
		assert.False(t, mr.Exists(cache.PublishedKey))
	})

	t.Run("fill at the current generation is stored", func(t *testing.T) {
		c, _ := newTestCache(t, time.Minute)

		require.NoError(t, c.Invalidate(ctx))
		gen, err := c.Generation(ctx)
		require.NoError(t, err)

		require.NoError(t, c.SetPublished(ctx, gen, items))

		got, ok, err := c.GetPublished(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, items, got)
	})

	t.Run("corrupt entry is reported", func(t *testing.T) {
		c, mr := newTestCache(t, time.Minute)

		require.NoError(t, mr.Set(cache.PublishedKey, "{not json"))

		_, ok, err := c.GetPublished(ctx)
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("server failure is reported", func(t *testing.T) {
		c, mr := newTestCache(t, time.Minute)
		mr.Close()

		_, _, err := c.GetPublished(ctx)
		assert.Error(t, err)
		assert.Error(t, c.SetPublished(ctx, 0, items))
	})
}

func TestNop(t *testing.T) {
	var c cache.ArticleCache = cache.Nop{}
	ctx := context.Background()

	require.NoError(t, c.SetPublished(ctx, 0, []domain.ArticleSummary{{ID: "x"}}))
	got, ok, err := c.GetPublished(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)
	assert.NoError(t, c.Invalidate(ctx))
}
