package domain_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/victorgomez09/league-stats/internal/domain"
)

func TestNewKDA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kills   int
		deaths  int
		assists int
		value   float64
		perfect bool
		str     string
	}{
		{10, 2, 5, 7.5, false, "7.50"},
		{5, 3, 3, 2.67, false, "2.67"},
		{0, 1, 0, 0, false, "0.00"},
		{7, 0, 3, 10, true, "Perfect"},
		{0, 0, 0, 0, true, "Perfect"},
		{1, 3, 0, 0.33, false, "0.33"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d/%d", tt.kills, tt.deaths, tt.assists), func(t *testing.T) {
			t.Parallel()

			kda := domain.NewKDA(tt.kills, tt.deaths, tt.assists)
			require.Equal(t, tt.value, kda.Value())
			require.Equal(t, tt.perfect, kda.Perfect)
			require.Equal(t, tt.str, kda.String())
		})
	}

	t.Run("marshals as string", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(domain.NewKDA(1, 0, 1))
		require.NoError(t, err)
		require.JSONEq(t, `"Perfect"`, string(data))

		data, err = json.Marshal(domain.NewKDA(3, 2, 1))
		require.NoError(t, err)
		require.JSONEq(t, `"2.00"`, string(data))
	})
}

func TestKillParticipation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kills     int
		assists   int
		teamKills int
		expected  float64
	}{
		{5, 3, 20, 40},
		{1, 1, 3, 66.67},
		{10, 0, 10, 100},
		{0, 0, 15, 0},
		{4, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d+%d of %d", tt.kills, tt.assists, tt.teamKills), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, domain.KillParticipation(tt.kills, tt.assists, tt.teamKills))
		})
	}
}
