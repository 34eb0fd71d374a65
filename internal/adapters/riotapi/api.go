package riotapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/victorgomez09/league-stats/internal/config"
	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/ratelimiting"
)

// API is the subset of the Riot API the service depends on
//
// An empty platform selects the configured default.
type API interface {
	GetAccountByRiotID(ctx context.Context, platform domain.Platform, riotID domain.RiotID) (domain.Account, error)
	GetSummonerByPUUID(ctx context.Context, platform domain.Platform, puuid string) (domain.Summoner, error)
	GetSummonerByName(ctx context.Context, platform domain.Platform, name string) (domain.Summoner, error)
	GetRankedEntries(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error)
	GetChampionMasteries(ctx context.Context, platform domain.Platform, puuid string, top int) ([]domain.ChampionMastery, error)
	GetMatchIDs(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]string, error)
	GetMatch(ctx context.Context, platform domain.Platform, matchID string) ([]byte, error)
}

const (
	minRequestInterval = 50 * time.Millisecond // 20 requests per second

	applicationLimit       = 100
	applicationLimitWindow = 2 * time.Minute
)

// NewLimiter paces requests and keeps them within the application quota of a personal key
func NewLimiter(nowFunc func() time.Time, afterFunc func(time.Duration) <-chan time.Time) ratelimiting.RequestLimiter {
	return ratelimiting.Chain(
		ratelimiting.NewMinIntervalLimiter(minRequestInterval, nowFunc, afterFunc),
		ratelimiting.NewWindowLimiter(applicationLimit, applicationLimitWindow, nowFunc, afterFunc),
	)
}

func NewRiotClientOrMock(conf config.Config, httpClient *http.Client, nowFunc func() time.Time) (API, error) {
	if conf.RiotAPIKey() != "" {
		limiter := NewLimiter(nowFunc, time.After)
		return NewClient(httpClient, limiter, conf.RiotAPIKey(), conf.Platform(), nowFunc), nil
	}
	if conf.IsDevelopment() {
		return newMockedAPI(nowFunc), nil
	}
	return nil, fmt.Errorf("%w: missing Riot API key in non-development environment", domain.ErrConfiguration)
}
