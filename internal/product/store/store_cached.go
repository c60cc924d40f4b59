package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"storefront/internal/platform/redis"
	"storefront/internal/product/models"
)

const cacheTTL = 5 * time.Minute

// Cached decorates a Store with a redis read-through cache on Get. Writes
// invalidate the cached entry. Cache failures degrade to the inner store and
// are logged, never surfaced.
type Cached struct {
	inner  Store
	redis  *redis.Client
	logger *slog.Logger
}

// NewCached wraps inner with the cache. A nil redis client disables caching,
// so callers can wire the decorator unconditionally.
func NewCached(inner Store, client *redis.Client, logger *slog.Logger) Store {
	if client == nil {
		return inner
	}
	return &Cached{inner: inner, redis: client, logger: logger}
}

func cacheKey(id uuid.UUID) string {
	return "product:" + id.String()
}

func (c *Cached) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	raw, err := c.redis.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var p models.Product
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
		// Unreadable entry; fall through and refresh it.
	} else if !errors.Is(err, goredis.Nil) {
		c.logger.WarnContext(ctx, "product cache read failed", "error", err)
	}

	p, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(p); err == nil {
		if err := c.redis.Set(ctx, cacheKey(id), raw, cacheTTL).Err(); err != nil {
			c.logger.WarnContext(ctx, "product cache write failed", "error", err)
		}
	}
	return p, nil
}

func (c *Cached) Create(ctx context.Context, p *models.Product) error {
	return c.inner.Create(ctx, p)
}

func (c *Cached) List(ctx context.Context, f Filter, page, size int) ([]*models.Product, int, error) {
	return c.inner.List(ctx, f, page, size)
}

func (c *Cached) Update(ctx context.Context, p *models.Product) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID)
	return nil
}

func (c *Cached) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *Cached) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.redis.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.WarnContext(ctx, "product cache invalidation failed", "product_id", id, "error", err)
	}
}
