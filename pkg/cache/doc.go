// Package cache provides an optional Redis-backed payload cache for scrape
// runs.
//
// Entries are keyed by the run keyword and the identifier, so repeated runs
// of the same job within the TTL reuse payloads instead of re-fetching. The
// cache is a pure read-through: a hit skips the fetch (and the per-call
// sleep), a miss or any cache error falls back to fetching. The engine
// works identically with no cache configured.
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Create cache manager
//	manager := cache.NewManager(redisClient)
//
//	// Probe before fetching
//	key := cache.Key{Keyword: "fastned", Identifier: "NL-FAST-1013"}
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch, then store
//		manager.Set(ctx, key, cache.NewEntry(payload, 10*time.Minute))
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - chargescan_cache_hits_total - Cache hits
//   - chargescan_cache_misses_total - Cache misses
//   - chargescan_cache_errors_total{operation} - Cache operation errors
package cache
