package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/victorgomez09/league-stats/internal/adapters/cache"
	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
)

// ResolveIdentity accepts a gameName#tagLine Riot ID or a legacy summoner name
type ResolveIdentity func(ctx context.Context, platform domain.Platform, identifier string) (domain.PlayerIdentity, error)

type identityProvider interface {
	GetAccountByRiotID(ctx context.Context, platform domain.Platform, riotID domain.RiotID) (domain.Account, error)
	GetSummonerByPUUID(ctx context.Context, platform domain.Platform, puuid string) (domain.Summoner, error)
	GetSummonerByName(ctx context.Context, platform domain.Platform, name string) (domain.Summoner, error)
}

func buildResolveIdentityWithoutCache(
	provider identityProvider,
	nowFunc func() time.Time,
) ResolveIdentity {
	return func(ctx context.Context, platform domain.Platform, identifier string) (domain.PlayerIdentity, error) {
		riotID, isRiotID := domain.ParseRiotID(identifier)
		if !isRiotID {
			return resolveLegacyName(ctx, provider, platform, identifier, nowFunc)
		}
		if riotID.GameName == "" || riotID.TagLine == "" {
			return domain.PlayerIdentity{}, fmt.Errorf("%w: riot id %q needs both a game name and a tag line", domain.ErrInvalidArgument, identifier)
		}

		account, err := callUpstream(ctx, func(ctx context.Context) (domain.Account, error) {
			return provider.GetAccountByRiotID(ctx, platform, riotID)
		})
		if err != nil {
			reportUnexpected(ctx, err, map[string]string{"riotId": riotID.String()})
			return domain.PlayerIdentity{}, fmt.Errorf("could not get account for riot id: %w", err)
		}

		summoner, err := callUpstream(ctx, func(ctx context.Context) (domain.Summoner, error) {
			return provider.GetSummonerByPUUID(ctx, platform, account.PUUID)
		})
		if err != nil {
			if ctx.Err() != nil {
				return domain.PlayerIdentity{}, fmt.Errorf("could not get summoner for account: %w", err)
			}
			// The puuid is enough to fetch match history
			logging.FromContext(ctx).WarnContext(ctx, "Summoner lookup failed, using a degraded identity", "puuid", account.PUUID, "error", err.Error())
			reportUnexpected(ctx, err, map[string]string{"riotId": riotID.String()})
			return domain.NewDegradedIdentity(account.PUUID, riotID, nowFunc()), nil
		}

		return domain.NewPlayerIdentity(account, summoner, nowFunc()), nil
	}
}

// resolveLegacyName uses the by-name summoner lookup that Riot is phasing out
func resolveLegacyName(
	ctx context.Context,
	provider identityProvider,
	platform domain.Platform,
	name string,
	nowFunc func() time.Time,
) (domain.PlayerIdentity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.PlayerIdentity{}, fmt.Errorf("%w: empty player identifier", domain.ErrInvalidArgument)
	}

	summoner, err := callUpstream(ctx, func(ctx context.Context) (domain.Summoner, error) {
		return provider.GetSummonerByName(ctx, platform, name)
	})
	if err != nil {
		reportUnexpected(ctx, err, map[string]string{"summonerName": name})
		return domain.PlayerIdentity{}, fmt.Errorf("could not get summoner by name: %w", err)
	}

	displayName := summoner.Name
	if displayName == "" {
		displayName = name
	}
	return domain.NewPlayerIdentity(domain.Account{PUUID: summoner.PUUID, GameName: displayName}, summoner, nowFunc()), nil
}

func BuildResolveIdentityWithCache(
	identityCache cache.Cache[domain.PlayerIdentity],
	provider identityProvider,
	nowFunc func() time.Time,
) ResolveIdentity {
	resolveIdentityWithoutCache := buildResolveIdentityWithoutCache(provider, nowFunc)

	return func(ctx context.Context, platform domain.Platform, identifier string) (domain.PlayerIdentity, error) {
		key := cacheKey(platform, "identity", strings.ToLower(strings.TrimSpace(identifier)))
		// Degraded identities stem from a transient summoner failure, the next lookup retries it
		identity, err := cache.GetOrCreateKeeping(ctx, identityCache, key, func() (domain.PlayerIdentity, error) {
			return resolveIdentityWithoutCache(ctx, platform, identifier)
		}, func(identity domain.PlayerIdentity) bool {
			return !identity.Degraded
		})
		if err != nil {
			return domain.PlayerIdentity{}, fmt.Errorf("failed to cache.GetOrCreate identity: %w", err)
		}
		return identity, nil
	}
}
