package domain

import (
	"fmt"
	"time"
)

type GameMode string

const (
	GameModeClassic GameMode = "CLASSIC"
	GameModeARAM    GameMode = "ARAM"
	GameModeArena   GameMode = "ARENA"
	GameModeOther   GameMode = "OTHER"
)

const (
	DefaultMatchCount = 10
	MaxMatchCount     = 20
)

// ValidateMatchPage checks a match history page request
func ValidateMatchPage(start, count int) error {
	if start < 0 {
		return fmt.Errorf("%w: start must not be negative, got %d", ErrInvalidArgument, start)
	}
	if count < 1 || count > MaxMatchCount {
		return fmt.Errorf("%w: count must be between 1 and %d, got %d", ErrInvalidArgument, MaxMatchCount, count)
	}
	return nil
}

var gameModeByQueueID = map[int]GameMode{
	0:    GameModeOther, // custom games
	400:  GameModeClassic,
	420:  GameModeClassic,
	430:  GameModeClassic,
	440:  GameModeClassic,
	480:  GameModeClassic,
	490:  GameModeClassic,
	700:  GameModeClassic,
	720:  GameModeARAM,
	830:  GameModeClassic,
	840:  GameModeClassic,
	850:  GameModeClassic,
	870:  GameModeClassic,
	880:  GameModeClassic,
	890:  GameModeClassic,
	450:  GameModeARAM,
	100:  GameModeARAM,
	1700: GameModeArena, // 2v2v2v2 Arena
	1710: GameModeArena,
}

// GameModeForQueue never fails, unknown queues are OTHER
func GameModeForQueue(queueID int) GameMode {
	mode, ok := gameModeByQueueID[queueID]
	if !ok {
		return GameModeOther
	}
	return mode
}

// IsExcludedQueue reports queues dropped from match history
func IsExcludedQueue(queueID int) bool {
	return queueID == 1810 || queueID == 1820
}

// AcceptsParticipantCount checks the participant count against the mode's lobby size
//
// Arena lobbies grew from 8 to 16 players. Other modes include custom games
// and are not checked.
func (m GameMode) AcceptsParticipantCount(count int) bool {
	switch m {
	case GameModeClassic, GameModeARAM:
		return count == 10
	case GameModeArena:
		return count == 8 || count == 16
	}
	return count > 0
}

type Augment struct {
	ID          int
	Name        string
	Description string
	Rarity      int
	IconPath    string
}

type SummonerSpell struct {
	ID   int
	Name string
}

type RuneSelection struct {
	StyleID   int
	StyleName string
	PerkIDs   []int
	PerkNames []string
}

type Item struct {
	ID   int
	Name string
}

type MatchParticipant struct {
	PUUID        string
	SummonerName string
	RiotIDName   string
	RiotIDTag    string
	ChampionName string
	TeamID       int
	Win          bool
}

// CanonicalMatch is a match seen from one player's perspective
type CanonicalMatch struct {
	MatchID           string
	GameCreation      time.Time
	GameDuration      time.Duration
	QueueID           int
	GameMode          GameMode
	ParticipantNumber int
	Participants      []MatchParticipant

	PUUID            string
	Win              bool
	ChampionName     string
	ChampionLevel    int
	TeamPosition     string
	IsEarlySurrender bool
	Kills            int
	Deaths           int
	Assists          int
	DoubleKills      int
	TripleKills      int
	QuadraKills      int
	PentaKills       int
	MinionsKilled    int
	NeutralMinions   int
	Gold             int
	DamageDealt      int
	DamageTaken      int
	VisionScore      int
	TeamKills        int

	Items []Item
	Ward  Item

	// Set for Arena games only
	Augments         []Augment
	Placement        int
	SubteamPlacement int

	// Set for non Arena games only
	Spells        []SummonerSpell
	PrimaryRune   RuneSelection
	SecondaryRune RuneSelection
}

func (m CanonicalMatch) CS() int {
	return m.MinionsKilled + m.NeutralMinions
}

func (m CanonicalMatch) KDA() KDA {
	return NewKDA(m.Kills, m.Deaths, m.Assists)
}

func (m CanonicalMatch) KillParticipation() float64 {
	return KillParticipation(m.Kills, m.Assists, m.TeamKills)
}

// CSPerMinute is 0 for games without a recorded duration
func (m CanonicalMatch) CSPerMinute() float64 {
	minutes := m.GameDuration.Minutes()
	if minutes <= 0 {
		return 0
	}
	return float64(m.CS()) / minutes
}
