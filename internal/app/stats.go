package app

import (
	"context"
	"fmt"

	"github.com/victorgomez09/league-stats/internal/adapters/cache"
	"github.com/victorgomez09/league-stats/internal/domain"
)

type GetAggregatedStats func(ctx context.Context, platform domain.Platform, puuid string, start, count int) (domain.AggregatedStats, error)

// BuildGetAggregatedStatsWithCache folds the same page listRecentMatches returns
func BuildGetAggregatedStatsWithCache(
	statsCache cache.Cache[domain.AggregatedStats],
	listRecentMatches ListRecentMatches,
) GetAggregatedStats {
	return func(ctx context.Context, platform domain.Platform, puuid string, start, count int) (domain.AggregatedStats, error) {
		if err := domain.ValidateMatchPage(start, count); err != nil {
			return domain.AggregatedStats{}, err
		}

		key := cacheKey(platform, "stats", puuid, start, count)
		stats, err := cache.GetOrCreate(ctx, statsCache, key, func() (domain.AggregatedStats, error) {
			matches, err := listRecentMatches(ctx, platform, puuid, start, count)
			if err != nil {
				return domain.AggregatedStats{}, err
			}
			return domain.AggregateStats(matches, puuid), nil
		})
		if err != nil {
			return domain.AggregatedStats{}, fmt.Errorf("failed to cache.GetOrCreate stats: %w", err)
		}
		return stats, nil
	}
}
