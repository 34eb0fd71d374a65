package app

import (
	"context"
	"fmt"

	"github.com/victorgomez09/league-stats/internal/adapters/cache"
	"github.com/victorgomez09/league-stats/internal/domain"
)

// MaxMasteryTop bounds the top parameter
const MaxMasteryTop = 200

// GetChampionMastery lists masteries by points, all of them when top is 0
type GetChampionMastery func(ctx context.Context, platform domain.Platform, puuid string, top int) ([]domain.ChampionMastery, error)

type masteryProvider interface {
	GetChampionMasteries(ctx context.Context, platform domain.Platform, puuid string, top int) ([]domain.ChampionMastery, error)
}

type championCatalog interface {
	Champions(ctx context.Context) domain.Champions
}

func BuildGetChampionMasteryWithCache(
	masteryCache cache.Cache[[]domain.ChampionMastery],
	provider masteryProvider,
	catalog championCatalog,
) GetChampionMastery {
	return func(ctx context.Context, platform domain.Platform, puuid string, top int) ([]domain.ChampionMastery, error) {
		if puuid == "" {
			return nil, fmt.Errorf("%w: empty puuid", domain.ErrInvalidArgument)
		}
		if top < 0 || top > MaxMasteryTop {
			return nil, fmt.Errorf("%w: top must be between 0 and %d, got %d", domain.ErrInvalidArgument, MaxMasteryTop, top)
		}

		key := cacheKey(platform, "mastery", puuid, top)
		masteries, err := cache.GetOrCreate(ctx, masteryCache, key, func() ([]domain.ChampionMastery, error) {
			masteries, err := callUpstream(ctx, func(ctx context.Context) ([]domain.ChampionMastery, error) {
				return provider.GetChampionMasteries(ctx, platform, puuid, top)
			})
			if err != nil {
				reportUnexpected(ctx, err)
				return nil, fmt.Errorf("could not get champion masteries: %w", err)
			}

			champions := catalog.Champions(ctx)
			named := make([]domain.ChampionMastery, 0, len(masteries))
			for _, mastery := range masteries {
				name, ok := champions.NameOf(mastery.ChampionID)
				if !ok {
					name = domain.UnknownChampionName
				}
				mastery.ChampionName = name
				named = append(named, mastery)
			}
			return named, nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to cache.GetOrCreate champion masteries: %w", err)
		}
		return masteries, nil
	}
}
