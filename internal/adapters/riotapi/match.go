package riotapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/victorgomez09/league-stats/internal/domain"
)

func (c *Client) GetMatchIDs(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]string, error) {
	path := fmt.Sprintf(
		"/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		url.PathEscape(puuid),
		start,
		count,
	)

	var ids []string
	if err := c.get(ctx, "match_ids_by_puuid", c.regionalURL(platform, path), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetMatch returns the raw match-v5 payload, validation is left to the caller
func (c *Client) GetMatch(ctx context.Context, platform domain.Platform, matchID string) ([]byte, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/%s", url.PathEscape(matchID))

	var raw json.RawMessage
	if err := c.get(ctx, "match_by_id", c.regionalURL(platform, path), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
