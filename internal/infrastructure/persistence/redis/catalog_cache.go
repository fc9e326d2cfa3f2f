package redis

import (
	"context"
	"errors"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/timetable"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG CACHE
// ══════════════════════════════════════════════════════════════════════════════

// CatalogCache implements timetable.CatalogStore on Redis. The catalog is
// stored as one JSON blob together with its build timestamp and no TTL:
// staleness is a read-side flag, and a stale catalog beats no catalog when
// the sheet export is down.
type CatalogCache struct {
	cache *Cache
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(cache *Cache) *CatalogCache {
	return &CatalogCache{cache: cache}
}

// storedCatalog is the persisted shape.
type storedCatalog struct {
	Catalog timetable.Catalog `json:"catalog"`
	BuiltAt time.Time         `json:"builtAt"`
}

// Save stores the catalog wholesale, replacing any previous one.
func (c *CatalogCache) Save(ctx context.Context, catalog timetable.Catalog, builtAt time.Time) error {
	return c.cache.Set(ctx, CatalogKey(), storedCatalog{
		Catalog: catalog,
		BuiltAt: builtAt,
	}, 0)
}

// Load returns the stored catalog and its build time.
// Returns shared.ErrCatalogNotBuilt when no import has happened yet.
func (c *CatalogCache) Load(ctx context.Context) (timetable.Catalog, time.Time, error) {
	var stored storedCatalog
	if err := c.cache.Get(ctx, CatalogKey(), &stored); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, time.Time{}, shared.ErrCatalogNotBuilt
		}
		return nil, time.Time{}, err
	}

	return stored.Catalog, stored.BuiltAt, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GRID CACHE
// ══════════════════════════════════════════════════════════════════════════════

// GridCache keeps raw downloaded day grids for a short window so a retried
// import does not re-download sheets that already arrived.
type GridCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewGridCache creates a new GridCache. A zero ttl uses TTLGridCache.
func NewGridCache(cache *Cache, ttl time.Duration) *GridCache {
	if ttl <= 0 {
		ttl = TTLGridCache
	}
	return &GridCache{cache: cache, ttl: ttl}
}

// Put stores one day's raw grid.
func (g *GridCache) Put(ctx context.Context, day shared.Weekday, grid string) error {
	return g.cache.SetString(ctx, GridKey(string(day)), grid, g.ttl)
}

// Get returns one day's raw grid. The second return is false on a miss.
func (g *GridCache) Get(ctx context.Context, day shared.Weekday) (string, bool, error) {
	grid, err := g.cache.GetString(ctx, GridKey(string(day)))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return "", false, nil
		}
		return "", false, err
	}
	return grid, true, nil
}

// CachedGridSource decorates a timetable.GridSource with the grid cache.
// A cache or fetch failure falls through to the inner source; the cache
// only ever saves downloads, it never blocks them.
type CachedGridSource struct {
	inner timetable.GridSource
	grids *GridCache
}

// NewCachedGridSource wraps source with read-through grid caching.
func NewCachedGridSource(source timetable.GridSource, grids *GridCache) *CachedGridSource {
	return &CachedGridSource{inner: source, grids: grids}
}

// FetchDay returns the cached grid for day when present, downloading and
// caching it otherwise.
func (s *CachedGridSource) FetchDay(ctx context.Context, day shared.Weekday) (string, error) {
	if grid, ok, err := s.grids.Get(ctx, day); err == nil && ok {
		return grid, nil
	}

	grid, err := s.inner.FetchDay(ctx, day)
	if err != nil {
		return "", err
	}

	_ = s.grids.Put(ctx, day, grid)
	return grid, nil
}

// Days lists the weekdays the inner source can provide.
func (s *CachedGridSource) Days() []shared.Weekday {
	return s.inner.Days()
}
