// Package cache stores rendered views in Redis, keyed by the path that
// serves them.
//
// Mutations call Revalidate with the path whose content they changed; the
// next read misses and rebuilds the entry.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/redis/go-redis/v9"
)

type ViewCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewViewCache(client redis.Cmdable, cfg *config.CacheConfig) *ViewCache {
	return &ViewCache{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}
}

// Key is the Redis key for path.
func (c *ViewCache) Key(path string) string {
	return c.prefix + path
}

// Get decodes the cached view for path into dest. It reports false on a
// miss.
func (c *ViewCache) Get(ctx context.Context, path string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.Key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", path, err)
	}
	return true, nil
}

// Set stores v as the view for path until the TTL runs out or the path is
// revalidated.
func (c *ViewCache) Set(ctx context.Context, path string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", path, err)
	}
	if err := c.client.Set(ctx, c.Key(path), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", path, err)
	}
	return nil
}

// Revalidate marks the view for path as stale.
func (c *ViewCache) Revalidate(ctx context.Context, path string) error {
	if err := c.client.Del(ctx, c.Key(path)).Err(); err != nil {
		return fmt.Errorf("cache revalidate %s: %w", path, err)
	}
	return nil
}
