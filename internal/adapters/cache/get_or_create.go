package cache

import (
	"context"
	"fmt"

	"github.com/victorgomez09/league-stats/internal/logging"
)

// GetOrCreate returns the cached value for key, or calls create and caches its result
//
// Concurrent callers for a key being created wait for the creator instead of calling create.
// Failed creations are not cached, the next caller tries again.
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, error) {
	return GetOrCreateKeeping(ctx, cache, key, create, nil)
}

// GetOrCreateKeeping is GetOrCreate where keep decides if a created value is stored
//
// A value that is not kept is still returned to its creator. Waiting callers then
// try again as if the creation had failed. A nil keep stores every value.
func GetOrCreateKeeping[T any](
	ctx context.Context,
	cache Cache[T],
	key string,
	create func() (T, error),
	keep func(T) bool,
) (T, error) {
	// Clean up the cache if we claim an entry, but don't set it
	// This allows other callers to try again
	claimed := false
	set := false
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	logger := logging.FromContext(ctx)

	for {
		result := cache.getOrClaim(key)

		if result.claimed {
			claimed = true

			logger.InfoContext(ctx, "Cache lookup", "cache", "miss", "key", key)
			recordLookup(ctx, "miss")

			data, err := create()
			if err != nil {
				var empty T
				return empty, fmt.Errorf("failed to create cache entry: %w", err)
			}

			if keep != nil && !keep(data) {
				logger.InfoContext(ctx, "Not caching created value", "key", key)
				return data, nil
			}

			cache.set(key, data)
			set = true

			return data, nil
		}

		if result.valid {
			logger.InfoContext(ctx, "Cache lookup", "cache", "hit", "key", key)
			recordLookup(ctx, "hit")
			return result.data, nil
		}

		if err := ctx.Err(); err != nil {
			var empty T
			return empty, fmt.Errorf("gave up waiting for cache entry: %w", err)
		}

		logger.DebugContext(ctx, "Waiting for cache", "key", key)
		cache.wait()
	}
}
