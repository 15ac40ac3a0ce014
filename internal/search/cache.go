package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vmunix/reelgo/internal/kv"
	"github.com/vmunix/reelgo/internal/movie"
)

const cacheKeyPrefix = "search:"

// CacheEntry is the aggregated result set stored for one query.
type CacheEntry struct {
	Movies       []movie.Record `json:"movies"`
	TotalResults int            `json:"totalResults"`
}

// CacheKey derives the cache key for a query and optional year filter:
// the lowercased, trimmed query, suffixed with "_<year>" when year is set.
func CacheKey(query, year string) string {
	key := strings.ToLower(strings.TrimSpace(query))
	if year != "" {
		key += "_" + year
	}
	return key
}

// resultCache is a best-effort cache: storage failures are logged and
// reported as misses.
type resultCache struct {
	store kv.Store
	ttl   time.Duration
	log   *slog.Logger
}

func (c *resultCache) get(ctx context.Context, key string) (*CacheEntry, bool) {
	var entry CacheEntry
	found, err := kv.GetJSON(ctx, c.store, cacheKeyPrefix+key, &entry)
	if err != nil {
		c.log.Warn("search cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	c.log.Debug("cache hit", "key", key, "movies", len(entry.Movies))
	return &entry, true
}

func (c *resultCache) set(ctx context.Context, key string, entry CacheEntry) {
	if err := kv.SetJSON(ctx, c.store, cacheKeyPrefix+key, entry, c.ttl); err != nil {
		c.log.Warn("search cache write failed", "key", key, "error", err)
		return
	}
	c.log.Debug("cache stored", "key", key, "movies", len(entry.Movies), "ttl", c.ttl)
}
