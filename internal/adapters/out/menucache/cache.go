// Package menucache decorates a menu catalog with a redis TTL cache.
// Menu details change rarely and are read on every order view, so a short
// cache takes the catalog table off the hot read path. The cache is best
// effort: when redis is unreachable every lookup falls through to the source.
package menucache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "menu_item:"

// CachedMenuCatalog serves menu item lookups from redis, falling back to the
// underlying catalog on miss. Concurrent misses for the same item are
// coalesced into a single source lookup.
type CachedMenuCatalog struct {
	source ports.MenuCatalog
	client redis.UniversalClient
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCachedMenuCatalog creates a caching decorator around the given catalog.
func NewCachedMenuCatalog(
	source ports.MenuCatalog,
	client redis.UniversalClient,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedMenuCatalog {
	return &CachedMenuCatalog{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "menucache"),
	}
}

// ResolveMenuItem returns the cached details when present, otherwise resolves
// through the source catalog and stores the result. Not-found is never
// cached: a missing item may be created at any moment.
func (c *CachedMenuCatalog) ResolveMenuItem(ctx context.Context, id kernel.UUID) (*ports.MenuItem, error) {
	key := keyPrefix + id.String()

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var item ports.MenuItem
		if unmarshalErr := json.Unmarshal([]byte(cached), &item); unmarshalErr == nil {
			return &item, nil
		}
		// Unreadable entry: drop it and resolve fresh.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("menu cache read failed", "menuItemID", id.String(), "error", err)
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		item, sourceErr := c.source.ResolveMenuItem(ctx, id)
		if sourceErr != nil {
			return nil, sourceErr
		}

		if data, marshalErr := json.Marshal(item); marshalErr == nil {
			if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
				c.logger.Warn("menu cache write failed", "menuItemID", id.String(), "error", setErr)
			}
		}

		return item, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*ports.MenuItem), nil
}

// Invalidate removes one item from the cache, for use after catalog edits.
func (c *CachedMenuCatalog) Invalidate(ctx context.Context, id kernel.UUID) error {
	if err := c.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return errs.NewStoreUnavailableErrorWithCause("invalidate menu item cache", err)
	}
	return nil
}
