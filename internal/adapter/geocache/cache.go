// Package geocache memoizes geographic lookups in memory. Nearby requests
// share entries: coordinates are rounded to three decimals (about 110 m).
package geocache

import (
	"context"
	"fmt"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

func coordKey(coord domain.Coordinates) string {
	return fmt.Sprintf("%.3f,%.3f", coord.Lat, coord.Lon)
}

// CachedElevation wraps an ElevationProvider with an LRU cache. Errors are
// not cached so a failed lookup is retried on the next request.
type CachedElevation struct {
	inner   domain.ElevationProvider
	cache   *lruCache[float64]
	metrics *observability.Metrics
}

// NewCachedElevation creates a cache decorator around an elevation provider.
func NewCachedElevation(inner domain.ElevationProvider, maxEntries int, metrics *observability.Metrics) *CachedElevation {
	return &CachedElevation{
		inner:   inner,
		cache:   newLRUCache[float64](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedElevation) Name() string {
	return c.inner.Name()
}

func (c *CachedElevation) Elevation(ctx context.Context, coord domain.Coordinates) (float64, error) {
	key := coordKey(coord)
	if v, ok := c.cache.get(key); ok {
		recordCache(c.metrics, c.inner.Name(), "hit")
		return v, nil
	}
	recordCache(c.metrics, c.inner.Name(), "miss")

	v, err := c.inner.Elevation(ctx, coord)
	if err != nil {
		return v, err
	}
	c.cache.put(key, v)
	return v, nil
}

// CachedSeismicHistory wraps a SeismicHistoryProvider with an LRU cache.
type CachedSeismicHistory struct {
	inner   domain.SeismicHistoryProvider
	name    string
	cache   *lruCache[domain.SeismicHistory]
	metrics *observability.Metrics
}

// NewCachedSeismicHistory creates a cache decorator around a seismic history
// provider. name labels the cache metrics.
func NewCachedSeismicHistory(inner domain.SeismicHistoryProvider, name string, maxEntries int, metrics *observability.Metrics) *CachedSeismicHistory {
	return &CachedSeismicHistory{
		inner:   inner,
		name:    name,
		cache:   newLRUCache[domain.SeismicHistory](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSeismicHistory) SeismicHistory(ctx context.Context, coord domain.Coordinates) (domain.SeismicHistory, error) {
	key := coordKey(coord)
	if h, ok := c.cache.get(key); ok {
		recordCache(c.metrics, c.name, "hit")
		return h, nil
	}
	recordCache(c.metrics, c.name, "miss")

	h, err := c.inner.SeismicHistory(ctx, coord)
	if err != nil {
		return h, err
	}
	c.cache.put(key, h)
	return h, nil
}

func recordCache(m *observability.Metrics, provider, result string) {
	if m != nil {
		m.LookupCache.WithLabelValues(provider, result).Inc()
	}
}
