package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// KDA is (kills + assists) / deaths, or Perfect when there are no deaths
type KDA struct {
	Ratio   float64
	Perfect bool
}

const perfectKDA = "Perfect"

func NewKDA(kills, deaths, assists int) KDA {
	if deaths == 0 {
		return KDA{Ratio: float64(kills + assists), Perfect: true}
	}
	return KDA{Ratio: RoundTo(float64(kills+assists)/float64(deaths), 2)}
}

// Value is the numeric form, kills + assists for perfect games
func (k KDA) Value() float64 {
	return k.Ratio
}

func (k KDA) String() string {
	if k.Perfect {
		return perfectKDA
	}
	return strconv.FormatFloat(k.Ratio, 'f', 2, 64)
}

func (k KDA) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// KillParticipation in percent rounded to 2 decimals, 0 when the team has no kills
func KillParticipation(kills, assists, teamKills int) float64 {
	if teamKills <= 0 {
		return 0
	}
	return RoundTo(float64(kills+assists)/float64(teamKills)*100, 2)
}

func RoundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
