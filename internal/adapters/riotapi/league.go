package riotapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/victorgomez09/league-stats/internal/domain"
)

type leagueEntryResponse struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}

// GetRankedEntries returns one entry per ranked queue, none for unranked players
func (c *Client) GetRankedEntries(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error) {
	path := fmt.Sprintf("/lol/league/v4/entries/by-puuid/%s", url.PathEscape(puuid))

	var response []leagueEntryResponse
	if err := c.get(ctx, "league_entries_by_puuid", c.platformURL(platform, path), &response); err != nil {
		return nil, err
	}

	entries := make([]domain.RankedEntry, 0, len(response))
	for _, entry := range response {
		entries = append(entries, domain.RankedEntry{
			QueueType:    entry.QueueType,
			Tier:         entry.Tier,
			Rank:         entry.Rank,
			LeaguePoints: entry.LeaguePoints,
			Wins:         entry.Wins,
			Losses:       entry.Losses,
			HotStreak:    entry.HotStreak,
			Veteran:      entry.Veteran,
			FreshBlood:   entry.FreshBlood,
			Inactive:     entry.Inactive,
		})
	}
	return entries, nil
}

type championMasteryResponse struct {
	ChampionID     int   `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime"`
}

// GetChampionMasteries lists masteries by points, only the top ones when top > 0
func (c *Client) GetChampionMasteries(ctx context.Context, platform domain.Platform, puuid string, top int) ([]domain.ChampionMastery, error) {
	path := fmt.Sprintf("/lol/champion-mastery/v4/champion-masteries/by-puuid/%s", url.PathEscape(puuid))
	if top > 0 {
		path = fmt.Sprintf("%s/top?count=%d", path, top)
	}

	var response []championMasteryResponse
	if err := c.get(ctx, "champion_masteries_by_puuid", c.platformURL(platform, path), &response); err != nil {
		return nil, err
	}

	masteries := make([]domain.ChampionMastery, 0, len(response))
	for _, mastery := range response {
		masteries = append(masteries, domain.ChampionMastery{
			ChampionID:     mastery.ChampionID,
			ChampionLevel:  mastery.ChampionLevel,
			ChampionPoints: mastery.ChampionPoints,
			LastPlayTime:   time.UnixMilli(mastery.LastPlayTime).UTC(),
		})
	}
	return masteries, nil
}
