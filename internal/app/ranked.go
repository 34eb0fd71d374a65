package app

import (
	"context"
	"fmt"

	"github.com/victorgomez09/league-stats/internal/adapters/cache"
	"github.com/victorgomez09/league-stats/internal/domain"
)

type GetRankedEntries func(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error)

type rankedProvider interface {
	GetRankedEntries(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error)
}

func BuildGetRankedEntriesWithCache(
	rankedCache cache.Cache[[]domain.RankedEntry],
	provider rankedProvider,
) GetRankedEntries {
	return func(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error) {
		if puuid == "" {
			return nil, fmt.Errorf("%w: empty puuid", domain.ErrInvalidArgument)
		}

		entries, err := cache.GetOrCreate(ctx, rankedCache, cacheKey(platform, "ranked", puuid), func() ([]domain.RankedEntry, error) {
			entries, err := callUpstream(ctx, func(ctx context.Context) ([]domain.RankedEntry, error) {
				return provider.GetRankedEntries(ctx, platform, puuid)
			})
			if err != nil {
				reportUnexpected(ctx, err)
				return nil, fmt.Errorf("could not get ranked entries: %w", err)
			}
			return entries, nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to cache.GetOrCreate ranked entries: %w", err)
		}
		return entries, nil
	}
}
