package riotapi

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/victorgomez09/league-stats/internal/domain"
)

//go:embed fixtures/match.json
var fixtureMatch []byte

const mockPUUID = "mock-puuid-0000000000000000000000000000000000000000000000000000000000000000"

// mockedAPI serves canned data for local development without an API key
type mockedAPI struct {
	nowFunc func() time.Time
}

func newMockedAPI(nowFunc func() time.Time) *mockedAPI {
	return &mockedAPI{nowFunc: nowFunc}
}

func (m *mockedAPI) GetAccountByRiotID(ctx context.Context, platform domain.Platform, riotID domain.RiotID) (domain.Account, error) {
	return domain.Account{PUUID: mockPUUID, GameName: riotID.GameName, TagLine: riotID.TagLine}, nil
}

func (m *mockedAPI) GetSummonerByPUUID(ctx context.Context, platform domain.Platform, puuid string) (domain.Summoner, error) {
	return domain.Summoner{
		PUUID:            puuid,
		LegacySummonerID: "mock-summoner-id",
		ProfileIconID:    29,
		SummonerLevel:    123,
		RevisionDate:     m.nowFunc().Add(-24 * time.Hour),
	}, nil
}

func (m *mockedAPI) GetSummonerByName(ctx context.Context, platform domain.Platform, name string) (domain.Summoner, error) {
	summoner, err := m.GetSummonerByPUUID(ctx, platform, mockPUUID)
	summoner.Name = name
	return summoner, err
}

func (m *mockedAPI) GetRankedEntries(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error) {
	return []domain.RankedEntry{
		{QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "II", LeaguePoints: 57, Wins: 48, Losses: 41},
		{QueueType: "RANKED_FLEX_SR", Tier: "SILVER", Rank: "I", LeaguePoints: 12, Wins: 9, Losses: 11},
	}, nil
}

func (m *mockedAPI) GetChampionMasteries(ctx context.Context, platform domain.Platform, puuid string, top int) ([]domain.ChampionMastery, error) {
	masteries := []domain.ChampionMastery{
		{ChampionID: 103, ChampionLevel: 7, ChampionPoints: 254_000, LastPlayTime: m.nowFunc().Add(-2 * time.Hour)},
		{ChampionID: 86, ChampionLevel: 5, ChampionPoints: 61_230, LastPlayTime: m.nowFunc().Add(-72 * time.Hour)},
		{ChampionID: 64, ChampionLevel: 4, ChampionPoints: 23_400, LastPlayTime: m.nowFunc().Add(-240 * time.Hour)},
	}
	if top > 0 && top < len(masteries) {
		masteries = masteries[:top]
	}
	return masteries, nil
}

func (m *mockedAPI) GetMatchIDs(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]string, error) {
	ids := make([]string, 0, count)
	for i := start; i < start+count; i++ {
		ids = append(ids, fmt.Sprintf("EUW1_%d", 7_100_000_000+i))
	}
	return ids, nil
}

func (m *mockedAPI) GetMatch(ctx context.Context, platform domain.Platform, matchID string) ([]byte, error) {
	raw := bytes.ReplaceAll(fixtureMatch, []byte("__MATCH_ID__"), []byte(matchID))
	return bytes.ReplaceAll(raw, []byte("__PUUID__"), []byte(mockPUUID)), nil
}
