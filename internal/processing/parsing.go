package processing

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/victorgomez09/league-stats/internal/domain"
)

type matchResponse struct {
	Metadata *matchMetadata `json:"metadata,omitempty"`
	Info     *matchInfo     `json:"info,omitempty"`
}

type matchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type matchInfo struct {
	GameCreation *int64             `json:"gameCreation,omitempty"`
	GameDuration *int               `json:"gameDuration,omitempty"`
	QueueID      *int               `json:"queueId,omitempty"`
	Participants []matchParticipant `json:"participants"`
}

type matchParticipant struct {
	PUUID          string  `json:"puuid"`
	SummonerName   string  `json:"summonerName"`
	RiotIDGameName string  `json:"riotIdGameName"`
	RiotIDTagline  string  `json:"riotIdTagline"`
	ChampionName   *string `json:"championName,omitempty"`
	ChampLevel     int     `json:"champLevel"`
	TeamID         int     `json:"teamId"`
	TeamPosition   string  `json:"teamPosition"`
	Win            *bool   `json:"win,omitempty"`

	GameEndedInEarlySurrender bool `json:"gameEndedInEarlySurrender"`

	Kills       *int `json:"kills,omitempty"`
	Deaths      *int `json:"deaths,omitempty"`
	Assists     *int `json:"assists,omitempty"`
	DoubleKills int  `json:"doubleKills"`
	TripleKills int  `json:"tripleKills"`
	QuadraKills int  `json:"quadraKills"`
	PentaKills  int  `json:"pentaKills"`

	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int `json:"neutralMinionsKilled"`
	GoldEarned                  int `json:"goldEarned"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int `json:"totalDamageTaken"`
	VisionScore                 int `json:"visionScore"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`

	Summoner1ID int   `json:"summoner1Id"`
	Summoner2ID int   `json:"summoner2Id"`
	Perks       perks `json:"perks"`

	PlayerAugment1   int `json:"playerAugment1"`
	PlayerAugment2   int `json:"playerAugment2"`
	PlayerAugment3   int `json:"playerAugment3"`
	PlayerAugment4   int `json:"playerAugment4"`
	PlayerSubteamID  int `json:"playerSubteamId"`
	Placement        int `json:"placement"`
	SubteamPlacement int `json:"subteamPlacement"`
}

type perks struct {
	Styles []perkStyle `json:"styles"`
}

type perkStyle struct {
	Description string          `json:"description"`
	Style       int             `json:"style"`
	Selections  []perkSelection `json:"selections"`
}

type perkSelection struct {
	Perk int `json:"perk"`
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedUpstreamData, fmt.Sprintf(format, args...))
}

// parseMatch decodes a match-v5 payload and checks the fields the normalizer depends on
func parseMatch(raw []byte) (matchResponse, error) {
	var response matchResponse
	decoder := json.NewDecoder(bytes.NewReader(raw))
	if err := decoder.Decode(&response); err != nil {
		return matchResponse{}, fmt.Errorf("%w: %w", domain.ErrMalformedUpstreamData, err)
	}

	if response.Metadata == nil {
		return matchResponse{}, malformed("missing metadata")
	}
	if response.Metadata.MatchID == "" {
		return matchResponse{}, malformed("missing matchId")
	}
	if response.Info == nil {
		return matchResponse{}, malformed("match %s is missing info", response.Metadata.MatchID)
	}

	info := response.Info
	switch {
	case info.GameCreation == nil:
		return matchResponse{}, malformed("match %s is missing gameCreation", response.Metadata.MatchID)
	case info.GameDuration == nil || *info.GameDuration < 0:
		return matchResponse{}, malformed("match %s has no valid gameDuration", response.Metadata.MatchID)
	case info.QueueID == nil:
		return matchResponse{}, malformed("match %s is missing queueId", response.Metadata.MatchID)
	}

	if len(info.Participants) != len(response.Metadata.Participants) {
		return matchResponse{}, malformed(
			"match %s lists %d participants in metadata but %d in info",
			response.Metadata.MatchID,
			len(response.Metadata.Participants),
			len(info.Participants),
		)
	}

	mode := domain.GameModeForQueue(*info.QueueID)
	if !mode.AcceptsParticipantCount(len(info.Participants)) {
		return matchResponse{}, malformed(
			"match %s has %d participants for mode %s",
			response.Metadata.MatchID,
			len(info.Participants),
			mode,
		)
	}

	for i, participant := range info.Participants {
		if err := validateParticipant(participant, mode); err != nil {
			return matchResponse{}, malformed("match %s participant %d: %s", response.Metadata.MatchID, i, err)
		}
		if participant.PUUID != response.Metadata.Participants[i] {
			return matchResponse{}, malformed("match %s participant %d does not match metadata", response.Metadata.MatchID, i)
		}
	}

	return response, nil
}

func validateParticipant(participant matchParticipant, mode domain.GameMode) error {
	switch {
	case participant.PUUID == "":
		return fmt.Errorf("missing puuid")
	case participant.ChampionName == nil:
		return fmt.Errorf("missing championName")
	case participant.Win == nil:
		return fmt.Errorf("missing win")
	case participant.Kills == nil || participant.Deaths == nil || participant.Assists == nil:
		return fmt.Errorf("missing kills, deaths or assists")
	case *participant.Kills < 0 || *participant.Deaths < 0 || *participant.Assists < 0:
		return fmt.Errorf("negative kills, deaths or assists")
	}

	if mode != domain.GameModeArena && len(participant.Perks.Styles) < 2 {
		return fmt.Errorf("expected primary and secondary rune styles, got %d", len(participant.Perks.Styles))
	}
	return nil
}

// QueueID reads only the queue of a raw match, for filtering before normalization
func QueueID(raw []byte) (int, error) {
	var response struct {
		Info *struct {
			QueueID *int `json:"queueId,omitempty"`
		} `json:"info,omitempty"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrMalformedUpstreamData, err)
	}
	if response.Info == nil || response.Info.QueueID == nil {
		return 0, malformed("missing queueId")
	}
	return *response.Info.QueueID, nil
}
