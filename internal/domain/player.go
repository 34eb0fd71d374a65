package domain

import (
	"fmt"
	"strings"
	"time"
)

const PlaceholderName = "Name obtained via Riot ID"

type PlayerIdentity struct {
	PUUID            string
	GameName         string
	TagLine          string
	LegacySummonerID string
	ProfileIconID    int
	SummonerLevel    int
	RevisionDate     time.Time

	// Degraded identities carry only the PUUID and placeholder profile fields
	Degraded   bool
	ResolvedAt time.Time
}

// Account is the Riot account behind a Riot ID
type Account struct {
	PUUID    string
	GameName string
	TagLine  string
}

// Summoner is the per-platform profile of an account
type Summoner struct {
	PUUID            string
	Name             string // only set by the legacy by-name lookup
	LegacySummonerID string
	ProfileIconID    int
	SummonerLevel    int
	RevisionDate     time.Time
}

// NewPlayerIdentity merges an account with its summoner profile
func NewPlayerIdentity(account Account, summoner Summoner, now time.Time) PlayerIdentity {
	return PlayerIdentity{
		PUUID:            account.PUUID,
		GameName:         account.GameName,
		TagLine:          account.TagLine,
		LegacySummonerID: summoner.LegacySummonerID,
		ProfileIconID:    summoner.ProfileIconID,
		SummonerLevel:    summoner.SummonerLevel,
		RevisionDate:     summoner.RevisionDate,
		ResolvedAt:       now,
	}
}

// RiotID is a gameName#tagLine pair
type RiotID struct {
	GameName string
	TagLine  string
}

func (id RiotID) String() string {
	return fmt.Sprintf("%s#%s", id.GameName, id.TagLine)
}

// ParseRiotID splits an identifier on its last '#'
//
// The second return value is false for bare legacy summoner names.
func ParseRiotID(identifier string) (RiotID, bool) {
	index := strings.LastIndex(identifier, "#")
	if index == -1 {
		return RiotID{}, false
	}
	return RiotID{
		GameName: strings.TrimSpace(identifier[:index]),
		TagLine:  strings.TrimSpace(identifier[index+1:]),
	}, true
}

// NewDegradedIdentity is used when the account is known but the summoner profile could not be fetched
func NewDegradedIdentity(puuid string, riotID RiotID, now time.Time) PlayerIdentity {
	name := riotID.GameName
	if name == "" {
		name = PlaceholderName
	}
	return PlayerIdentity{
		PUUID:         puuid,
		GameName:      name,
		TagLine:       riotID.TagLine,
		ProfileIconID: 0,
		SummonerLevel: 0,
		RevisionDate:  now,
		Degraded:      true,
		ResolvedAt:    now,
	}
}

type RankedEntry struct {
	QueueType    string
	Tier         string
	Rank         string
	LeaguePoints int
	Wins         int
	Losses       int
	HotStreak    bool
	Veteran      bool
	FreshBlood   bool
	Inactive     bool
}

// WinRate in percent, 0 when no games are recorded
func (e RankedEntry) WinRate() float64 {
	games := e.Wins + e.Losses
	if games == 0 {
		return 0
	}
	return RoundTo(float64(e.Wins)/float64(games)*100, 2)
}

type ChampionMastery struct {
	ChampionID     int
	ChampionName   string
	ChampionLevel  int
	ChampionPoints int
	LastPlayTime   time.Time
}
