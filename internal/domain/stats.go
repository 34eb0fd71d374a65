package domain

import (
	"cmp"
	"slices"
	"time"
)

type ChampionStats struct {
	ChampionName string
	Games        int
	Wins         int
	Kills        int
	Deaths       int
	Assists      int
}

func (c ChampionStats) WinRate() float64 {
	return winRate(c.Wins, c.Games)
}

func (c ChampionStats) KDA() KDA {
	return NewKDA(c.Kills, c.Deaths, c.Assists)
}

type AggregatedStats struct {
	TotalGames    int
	Wins          int
	Kills         int
	Deaths        int
	Assists       int
	CS            int
	Damage        int
	DamageTaken   int
	Gold          int
	VisionScore   int
	TotalDuration time.Duration

	// Arithmetic mean of the per match values
	AvgCSPerMin          float64
	AvgKillParticipation float64

	ChampionStats map[string]ChampionStats
}

func (s AggregatedStats) Losses() int {
	return s.TotalGames - s.Wins
}

func (s AggregatedStats) WinRate() float64 {
	return winRate(s.Wins, s.TotalGames)
}

func (s AggregatedStats) KDA() KDA {
	return NewKDA(s.Kills, s.Deaths, s.Assists)
}

func (s AggregatedStats) AvgKills() float64 {
	return average(s.Kills, s.TotalGames)
}

func (s AggregatedStats) AvgDeaths() float64 {
	return average(s.Deaths, s.TotalGames)
}

func (s AggregatedStats) AvgAssists() float64 {
	return average(s.Assists, s.TotalGames)
}

// ChampionsByGames orders the rollups by games played, then by name
func (s AggregatedStats) ChampionsByGames() []ChampionStats {
	champions := make([]ChampionStats, 0, len(s.ChampionStats))
	for _, champion := range s.ChampionStats {
		champions = append(champions, champion)
	}
	slices.SortFunc(champions, func(a, b ChampionStats) int {
		if a.Games != b.Games {
			return cmp.Compare(b.Games, a.Games)
		}
		return cmp.Compare(a.ChampionName, b.ChampionName)
	})
	return champions
}

// AggregateStats folds the matches played by puuid
//
// Matches belonging to other players are skipped.
func AggregateStats(matches []CanonicalMatch, puuid string) AggregatedStats {
	stats := AggregatedStats{
		ChampionStats: make(map[string]ChampionStats),
	}

	csPerMinSum := 0.0
	killParticipationSum := 0.0

	for _, match := range matches {
		if match.PUUID != puuid {
			continue
		}

		stats.TotalGames++
		if match.Win {
			stats.Wins++
		}
		stats.Kills += match.Kills
		stats.Deaths += match.Deaths
		stats.Assists += match.Assists
		stats.CS += match.CS()
		stats.Damage += match.DamageDealt
		stats.DamageTaken += match.DamageTaken
		stats.Gold += match.Gold
		stats.VisionScore += match.VisionScore
		stats.TotalDuration += match.GameDuration

		csPerMinSum += match.CSPerMinute()
		killParticipationSum += match.KillParticipation()

		champion := stats.ChampionStats[match.ChampionName]
		champion.ChampionName = match.ChampionName
		champion.Games++
		if match.Win {
			champion.Wins++
		}
		champion.Kills += match.Kills
		champion.Deaths += match.Deaths
		champion.Assists += match.Assists
		stats.ChampionStats[match.ChampionName] = champion
	}

	if stats.TotalGames > 0 {
		stats.AvgCSPerMin = csPerMinSum / float64(stats.TotalGames)
		stats.AvgKillParticipation = killParticipationSum / float64(stats.TotalGames)
	}

	return stats
}

func winRate(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return RoundTo(float64(wins)/float64(games)*100, 2)
}

func average(total, games int) float64 {
	if games == 0 {
		return 0
	}
	return RoundTo(float64(total)/float64(games), 2)
}
