package app

import (
	"context"
	"fmt"

	"github.com/victorgomez09/league-stats/internal/adapters/cache"
	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
	"github.com/victorgomez09/league-stats/internal/processing"
	"golang.org/x/sync/errgroup"
)

// ListRecentMatches returns one page of the player's match history, newest first
//
// Pages are all or nothing: any failing match fails the whole page.
type ListRecentMatches func(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]domain.CanonicalMatch, error)

type matchProvider interface {
	GetMatchIDs(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]string, error)
	GetMatch(ctx context.Context, platform domain.Platform, matchID string) ([]byte, error)
}

type matchStore interface {
	Get(ctx context.Context, matchID string) ([]byte, bool, error)
	Put(ctx context.Context, matchID string, raw []byte) error
}

type matchNormalizer interface {
	Normalize(ctx context.Context, raw []byte, puuid string) (domain.CanonicalMatch, error)
}

func buildListRecentMatchesWithoutCache(
	provider matchProvider,
	store matchStore,
	normalizer matchNormalizer,
) ListRecentMatches {
	return func(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]domain.CanonicalMatch, error) {
		ids, err := callUpstream(ctx, func(ctx context.Context) ([]string, error) {
			return provider.GetMatchIDs(ctx, platform, puuid, start, count)
		})
		if err != nil {
			reportUnexpected(ctx, err)
			return nil, fmt.Errorf("could not list match ids: %w", err)
		}

		raws, err := fetchDetails(ctx, provider, store, platform, ids)
		if err != nil {
			reportUnexpected(ctx, err)
			return nil, err
		}

		matches := make([]domain.CanonicalMatch, 0, len(raws))
		for i, raw := range raws {
			queueID, err := processing.QueueID(raw)
			if err != nil {
				reportUnexpected(ctx, err, map[string]string{"matchId": ids[i]})
				return nil, fmt.Errorf("match %s: %w", ids[i], err)
			}
			if domain.IsExcludedQueue(queueID) {
				continue
			}

			match, err := normalizer.Normalize(ctx, raw, puuid)
			if err != nil {
				reportUnexpected(ctx, err, map[string]string{"matchId": ids[i]})
				return nil, fmt.Errorf("could not normalize match %s: %w", ids[i], err)
			}
			matches = append(matches, match)
		}
		return matches, nil
	}
}

// fetchDetails gets all raw matches concurrently, pacing is left to the provider's rate limiter
//
// Results keep the order of ids. The first failure cancels the remaining fetches.
func fetchDetails(
	ctx context.Context,
	provider matchProvider,
	store matchStore,
	platform domain.Platform,
	ids []string,
) ([][]byte, error) {
	logger := logging.FromContext(ctx)

	raws := make([][]byte, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			raw, found, err := store.Get(gctx, id)
			if err != nil {
				logger.WarnContext(gctx, "Failed to read match from store", "matchId", id, "error", err.Error())
			}
			if found {
				raws[i] = raw
				return nil
			}

			raw, err = callUpstream(gctx, func(ctx context.Context) ([]byte, error) {
				return provider.GetMatch(ctx, platform, id)
			})
			if err != nil {
				return fmt.Errorf("could not get match %s: %w", id, err)
			}
			raws[i] = raw

			if err := store.Put(gctx, id, raw); err != nil {
				logger.WarnContext(gctx, "Failed to store match", "matchId", id, "error", err.Error())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raws, nil
}

func BuildListRecentMatchesWithCache(
	matchesCache cache.Cache[[]domain.CanonicalMatch],
	provider matchProvider,
	store matchStore,
	normalizer matchNormalizer,
) ListRecentMatches {
	listRecentMatchesWithoutCache := buildListRecentMatchesWithoutCache(provider, store, normalizer)

	return func(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]domain.CanonicalMatch, error) {
		if puuid == "" {
			return nil, fmt.Errorf("%w: empty puuid", domain.ErrInvalidArgument)
		}
		if err := domain.ValidateMatchPage(start, count); err != nil {
			return nil, err
		}

		key := cacheKey(platform, "matches", puuid, start, count)
		matches, err := cache.GetOrCreate(ctx, matchesCache, key, func() ([]domain.CanonicalMatch, error) {
			return listRecentMatchesWithoutCache(ctx, platform, puuid, start, count)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to cache.GetOrCreate matches: %w", err)
		}
		return matches, nil
	}
}
