// Package cache stores the rendered public article list so anonymous
// readers do not hit PostgreSQL on every page view.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Faisalali0159/besofy/internal/domain"
)

const (
	// PublishedKey is the Redis key holding the public article list.
	PublishedKey = "news:published"
	// GenerationKey counts invalidations of PublishedKey.
	GenerationKey = "news:published:gen"
)

// ErrStale is returned by SetPublished when the list was invalidated after
// the caller read the generation.
var ErrStale = errors.New("published list invalidated during load")

// ArticleCache caches the public article list.
//
// A fill must read Generation before querying the database and pass it to
// SetPublished, so a load that overlaps a mutation never restores the
// pre-mutation list.
type ArticleCache interface {
	// GetPublished returns the cached list. ok is false on a miss.
	GetPublished(ctx context.Context) (items []domain.ArticleSummary, ok bool, err error)
	Generation(ctx context.Context) (int64, error)
	// SetPublished stores items only while the generation is still gen.
	SetPublished(ctx context.Context, gen int64, items []domain.ArticleSummary) error
	Invalidate(ctx context.Context) error
}

// RedisArticleCache implements ArticleCache on top of Redis.
type RedisArticleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisArticleCache creates a cache whose entries expire after ttl.
func NewRedisArticleCache(client *redis.Client, ttl time.Duration) *RedisArticleCache {
	return &RedisArticleCache{client: client, ttl: ttl}
}

// GetPublished implements ArticleCache.
func (c *RedisArticleCache) GetPublished(ctx context.Context) ([]domain.ArticleSummary, bool, error) {
	raw, err := c.client.Get(ctx, PublishedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get published list: %w", err)
	}

	var items []domain.ArticleSummary
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode published list: %w", err)
	}
	return items, true, nil
}

// Generation implements ArticleCache. A missing counter is generation 0.
func (c *RedisArticleCache) Generation(ctx context.Context) (int64, error) {
	gen, err := readGeneration(ctx, c.client)
	if err != nil {
		return 0, fmt.Errorf("get published generation: %w", err)
	}
	return gen, nil
}

// SetPublished implements ArticleCache. The generation check and the write
// run in one WATCH/MULTI transaction.
func (c *RedisArticleCache) SetPublished(ctx context.Context, gen int64, items []domain.ArticleSummary) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode published list: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, PublishedKey, raw, c.ttl)
			return nil
		})
		return err
	}, GenerationKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	default:
		return fmt.Errorf("set published list: %w", err)
	}
}

// Invalidate implements ArticleCache.
func (c *RedisArticleCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey)
		pipe.Del(ctx, PublishedKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate published list: %w", err)
	}
	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, g getter) (int64, error) {
	gen, err := g.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Nop is an ArticleCache that never stores anything.
type Nop struct{}

// GetPublished always misses.
func (Nop) GetPublished(context.Context) ([]domain.ArticleSummary, bool, error) {
	return nil, false, nil
}

// Generation is always 0.
func (Nop) Generation(context.Context) (int64, error) { return 0, nil }

// SetPublished discards items.
func (Nop) SetPublished(context.Context, int64, []domain.ArticleSummary) error { return nil }

// Invalidate does nothing.
func (Nop) Invalidate(context.Context) error { return nil }
