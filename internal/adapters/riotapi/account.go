package riotapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/victorgomez09/league-stats/internal/domain"
)

type accountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

func (c *Client) GetAccountByRiotID(ctx context.Context, platform domain.Platform, riotID domain.RiotID) (domain.Account, error) {
	path := fmt.Sprintf(
		"/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(riotID.GameName),
		url.PathEscape(riotID.TagLine),
	)

	var response accountResponse
	if err := c.get(ctx, "account_by_riot_id", c.accountURL(platform, path), &response); err != nil {
		return domain.Account{}, err
	}
	return accountFromResponse(response)
}

// account-v1 is not served from the sea cluster
func (c *Client) accountURL(platform domain.Platform, path string) string {
	region := c.resolvePlatform(platform).Region()
	if region == domain.RegionSEA {
		region = domain.RegionAsia
	}
	return fmt.Sprintf("https://%s%s", region.Host(), path)
}

func accountFromResponse(response accountResponse) (domain.Account, error) {
	if response.PUUID == "" {
		return domain.Account{}, fmt.Errorf("%w: account response is missing puuid", domain.ErrMalformedUpstreamData)
	}
	return domain.Account{
		PUUID:    response.PUUID,
		GameName: response.GameName,
		TagLine:  response.TagLine,
	}, nil
}

type summonerResponse struct {
	ID            string `json:"id"`
	PUUID         string `json:"puuid"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

func (c *Client) GetSummonerByPUUID(ctx context.Context, platform domain.Platform, puuid string) (domain.Summoner, error) {
	path := fmt.Sprintf("/lol/summoner/v4/summoners/by-puuid/%s", url.PathEscape(puuid))

	var response summonerResponse
	if err := c.get(ctx, "summoner_by_puuid", c.platformURL(platform, path), &response); err != nil {
		return domain.Summoner{}, err
	}
	return summonerFromResponse(response)
}

// GetSummonerByName uses the legacy summoner name lookup, which Riot has been phasing out
func (c *Client) GetSummonerByName(ctx context.Context, platform domain.Platform, name string) (domain.Summoner, error) {
	path := fmt.Sprintf("/lol/summoner/v4/summoners/by-name/%s", url.PathEscape(name))

	var response summonerResponse
	if err := c.get(ctx, "summoner_by_name", c.platformURL(platform, path), &response); err != nil {
		return domain.Summoner{}, err
	}
	return summonerFromResponse(response)
}

func summonerFromResponse(response summonerResponse) (domain.Summoner, error) {
	if response.PUUID == "" {
		return domain.Summoner{}, fmt.Errorf("%w: summoner response is missing puuid", domain.ErrMalformedUpstreamData)
	}
	return domain.Summoner{
		PUUID:            response.PUUID,
		Name:             response.Name,
		LegacySummonerID: response.ID,
		ProfileIconID:    response.ProfileIconID,
		SummonerLevel:    response.SummonerLevel,
		RevisionDate:     time.UnixMilli(response.RevisionDate).UTC(),
	}, nil
}
