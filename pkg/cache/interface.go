// Package cache memoizes external weather service responses (PV output,
// cooling demand) by a (kind, lat, lon, date range) key, so repeated
// pipeline runs against the same location and window don't re-fetch. The
// key does not name the provider, and hydro flow lookups are not cached. spec.md §5 requires external fetches to be memoized by the
// caller; this package is that memoization layer.
package cache

import "context"

// Store is a minimal get/put cache keyed by an opaque string (built by
// pipeline.cacheKey) with a JSON-serializable value.
type Store interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Put(ctx context.Context, key string, value any) error
}
