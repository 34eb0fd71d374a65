package ports_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/ports"
)

type handlerDeps struct {
	policy           *ports.OriginPolicy
	logger           *slog.Logger
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc
}

func newHandlerDeps(t *testing.T) handlerDeps {
	t.Helper()

	policy, err := ports.NewOriginPolicy(false, "leaguestats.gg")
	require.NoError(t, err)
	return handlerDeps{
		policy: policy,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		sentryMiddleware: func(next http.HandlerFunc) http.HandlerFunc {
			return next
		},
	}
}

func serve(handler http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestMakeResolveIdentityHandler(t *testing.T) {
	t.Parallel()

	deps := newHandlerDeps(t)
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)

	makeMux := func(t *testing.T, expectedPlatform domain.Platform, identity domain.PlayerIdentity, err error) (*http.ServeMux, *bool) {
		called := false
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/players/{riotId}", ports.MakeResolveIdentityHandler(
			func(ctx context.Context, platform domain.Platform, identifier string) (domain.PlayerIdentity, error) {
				t.Helper()
				require.Equal(t, expectedPlatform, platform)
				require.Equal(t, "Faker#KR1", identifier)
				called = true
				return identity, err
			},
			deps.policy, deps.logger, deps.sentryMiddleware,
		))
		return mux, &called
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		mux, called := makeMux(t, "KR", domain.PlayerIdentity{
			PUUID:         "faker-puuid",
			GameName:      "Faker",
			TagLine:       "KR1",
			ProfileIconID: 6,
			SummonerLevel: 712,
			RevisionDate:  now,
			ResolvedAt:    now,
		}, nil)

		w := serve(mux, "/v1/players/Faker%23KR1?platform=kr")

		require.True(t, *called)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{
			"success": true,
			"puuid": "faker-puuid",
			"gameName": "Faker",
			"tagLine": "KR1",
			"profileIconId": 6,
			"summonerLevel": 712,
			"revisionDate": "2025-03-03T12:00:00Z",
			"degraded": false,
			"resolvedAt": "2025-03-03T12:00:00Z"
		}`, w.Body.String())
	})

	t.Run("degraded identity", func(t *testing.T) {
		t.Parallel()

		mux, _ := makeMux(t, "", domain.NewDegradedIdentity("faker-puuid", domain.RiotID{GameName: "Faker", TagLine: "KR1"}, now), nil)

		w := serve(mux, "/v1/players/Faker%23KR1")

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		require.Equal(t, true, body["degraded"])
		require.InDelta(t, 0, body["summonerLevel"], 1e-9)
		require.Equal(t, "faker-puuid", body["puuid"])
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		mux, _ := makeMux(t, "", domain.PlayerIdentity{}, domain.ErrPlayerNotFound)

		w := serve(mux, "/v1/players/Faker%23KR1")

		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		require.Equal(t, false, body["success"])
		require.Equal(t, "PLAYER_NOT_FOUND", body["code"])
	})

	t.Run("unknown platform", func(t *testing.T) {
		t.Parallel()

		mux, called := makeMux(t, "", domain.PlayerIdentity{}, nil)

		w := serve(mux, "/v1/players/Faker%23KR1?platform=atlantis")

		require.False(t, *called)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "INVALID_ARGUMENT", decodeBody(t, w)["code"])
	})
}

func TestMakeGetRankedEntriesHandler(t *testing.T) {
	t.Parallel()

	deps := newHandlerDeps(t)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		handler := ports.MakeGetRankedEntriesHandler(
			func(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error) {
				require.Equal(t, "viewer-puuid", puuid)
				return []domain.RankedEntry{{QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "II", LeaguePoints: 54, Wins: 30, Losses: 20}}, nil
			},
			deps.policy, deps.logger, deps.sentryMiddleware,
		)
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/players/{puuid}/ranked", handler)

		w := serve(mux, "/v1/players/viewer-puuid/ranked")

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true,"entries":[{
			"queueType":"RANKED_SOLO_5x5","tier":"GOLD","rank":"II","leaguePoints":54,
			"wins":30,"losses":20,"winRate":60,
			"hotStreak":false,"veteran":false,"freshBlood":false,"inactive":false
		}]}`, w.Body.String())
	})

	t.Run("unranked", func(t *testing.T) {
		t.Parallel()

		handler := ports.MakeGetRankedEntriesHandler(
			func(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error) {
				return nil, nil
			},
			deps.policy, deps.logger, deps.sentryMiddleware,
		)
		req := httptest.NewRequest(http.MethodGet, "/v1/players/viewer-puuid/ranked", nil)
		req.SetPathValue("puuid", "viewer-puuid")
		w := httptest.NewRecorder()

		handler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true,"entries":[]}`, w.Body.String())
	})

	t.Run("rate limited upstream", func(t *testing.T) {
		t.Parallel()

		handler := ports.MakeGetRankedEntriesHandler(
			func(ctx context.Context, platform domain.Platform, puuid string) ([]domain.RankedEntry, error) {
				return nil, &domain.RateLimitError{RetryAfter: 7 * time.Second}
			},
			deps.policy, deps.logger, deps.sentryMiddleware,
		)
		req := httptest.NewRequest(http.MethodGet, "/v1/players/viewer-puuid/ranked", nil)
		req.SetPathValue("puuid", "viewer-puuid")
		w := httptest.NewRecorder()

		handler(w, req)

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		require.Equal(t, "7", w.Header().Get("Retry-After"))
	})
}

func TestMakeListRecentMatchesHandler(t *testing.T) {
	t.Parallel()

	deps := newHandlerDeps(t)

	makeMux := func(t *testing.T, expectedStart, expectedCount int, err error) (*http.ServeMux, *bool) {
		called := false
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/players/{puuid}/matches", ports.MakeListRecentMatchesHandler(
			func(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]domain.CanonicalMatch, error) {
				t.Helper()
				require.Equal(t, domain.Platform("NA1"), platform)
				require.Equal(t, "viewer-puuid", puuid)
				require.Equal(t, expectedStart, start)
				require.Equal(t, expectedCount, count)
				called = true
				if err != nil {
					return nil, err
				}
				return []domain.CanonicalMatch{{MatchID: "NA1_1", PUUID: puuid, Kills: 3, Deaths: 1, Assists: 2}}, nil
			},
			deps.policy, deps.logger, deps.sentryMiddleware,
		))
		return mux, &called
	}

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		mux, called := makeMux(t, 0, domain.DefaultMatchCount, nil)

		w := serve(mux, "/v1/players/viewer-puuid/matches?platform=NA1")

		require.True(t, *called)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		require.Equal(t, true, body["success"])
		require.InDelta(t, 10, body["nextStart"], 1e-9)
		matches, ok := body["matches"].([]any)
		require.True(t, ok)
		require.Len(t, matches, 1)
		match := matches[0].(map[string]any)
		require.Equal(t, "NA1_1", match["matchId"])
		require.Equal(t, "5.00", match["kda"])
	})

	t.Run("explicit page", func(t *testing.T) {
		t.Parallel()

		mux, called := makeMux(t, 20, 5, nil)

		w := serve(mux, "/v1/players/viewer-puuid/matches?platform=NA1&start=20&count=5")

		require.True(t, *called)
		require.Equal(t, http.StatusOK, w.Code)
		require.InDelta(t, 25, decodeBody(t, w)["nextStart"], 1e-9)
	})

	t.Run("non numeric count", func(t *testing.T) {
		t.Parallel()

		mux, called := makeMux(t, 0, 0, nil)

		w := serve(mux, "/v1/players/viewer-puuid/matches?platform=NA1&count=ten")

		require.False(t, *called)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("out of bounds count", func(t *testing.T) {
		t.Parallel()

		mux, _ := makeMux(t, 0, 50, domain.ValidateMatchPage(0, 50))

		w := serve(mux, "/v1/players/viewer-puuid/matches?platform=NA1&count=50")

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "INVALID_ARGUMENT", decodeBody(t, w)["code"])
	})

	t.Run("failed page", func(t *testing.T) {
		t.Parallel()

		mux, _ := makeMux(t, 0, 10, domain.ErrUpstreamUnavailable)

		w := serve(mux, "/v1/players/viewer-puuid/matches?platform=NA1")

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Equal(t, "UPSTREAM_UNAVAILABLE", decodeBody(t, w)["code"])
	})
}

func TestMakeGetAggregatedStatsHandler(t *testing.T) {
	t.Parallel()

	deps := newHandlerDeps(t)

	handler := ports.MakeGetAggregatedStatsHandler(
		func(ctx context.Context, platform domain.Platform, puuid string, start, count int) (domain.AggregatedStats, error) {
			require.Equal(t, "viewer-puuid", puuid)
			require.Equal(t, 0, start)
			require.Equal(t, 3, count)
			return domain.AggregateStats([]domain.CanonicalMatch{
				{PUUID: puuid, ChampionName: "Ahri", Win: true, Kills: 10, Deaths: 2, Assists: 8, TeamKills: 30, GameDuration: 20 * time.Minute},
				{PUUID: puuid, ChampionName: "Ahri", Win: false, Kills: 2, Deaths: 6, Assists: 4, TeamKills: 12, GameDuration: 30 * time.Minute},
				{PUUID: puuid, ChampionName: "Lux", Win: true, Kills: 0, Deaths: 0, Assists: 20, TeamKills: 25, GameDuration: 25 * time.Minute},
			}, puuid), nil
		},
		deps.policy, deps.logger, deps.sentryMiddleware,
	)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/players/{puuid}/stats", handler)

	w := serve(mux, "/v1/players/viewer-puuid/stats?count=3")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.InDelta(t, 3, body["totalGames"], 1e-9)
	require.InDelta(t, 2, body["wins"], 1e-9)
	require.InDelta(t, 1, body["losses"], 1e-9)
	require.InDelta(t, 66.67, body["winRate"], 1e-9)
	require.Equal(t, "5.50", body["kda"])
	require.InDelta(t, 4500, body["totalDurationSeconds"], 1e-9)

	champions, ok := body["champions"].([]any)
	require.True(t, ok)
	require.Len(t, champions, 2)
	require.Equal(t, "Ahri", champions[0].(map[string]any)["championName"])
	require.Equal(t, "Perfect", champions[1].(map[string]any)["kda"])
}

func TestMakeGetChampionMasteryHandler(t *testing.T) {
	t.Parallel()

	deps := newHandlerDeps(t)
	lastPlayed := time.Date(2025, time.February, 10, 20, 0, 0, 0, time.UTC)

	makeHandler := func(t *testing.T, expectedTop int) (http.HandlerFunc, *bool) {
		called := false
		return ports.MakeGetChampionMasteryHandler(
			func(ctx context.Context, platform domain.Platform, puuid string, top int) ([]domain.ChampionMastery, error) {
				t.Helper()
				require.Equal(t, expectedTop, top)
				called = true
				return []domain.ChampionMastery{
					{ChampionID: 62, ChampionName: "Wukong", ChampionLevel: 7, ChampionPoints: 250000, LastPlayTime: lastPlayed},
				}, nil
			},
			deps.policy, deps.logger, deps.sentryMiddleware,
		), &called
	}

	t.Run("top", func(t *testing.T) {
		t.Parallel()

		handler, called := makeHandler(t, 3)
		req := httptest.NewRequest(http.MethodGet, "/v1/players/viewer-puuid/mastery?top=3", nil)
		req.SetPathValue("puuid", "viewer-puuid")
		w := httptest.NewRecorder()

		handler(w, req)

		require.True(t, *called)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true,"masteries":[{
			"championId":62,"championName":"Wukong","championLevel":7,
			"championPoints":250000,"lastPlayTime":"2025-02-10T20:00:00Z"
		}]}`, w.Body.String())
	})

	t.Run("all", func(t *testing.T) {
		t.Parallel()

		handler, called := makeHandler(t, 0)
		req := httptest.NewRequest(http.MethodGet, "/v1/players/viewer-puuid/mastery", nil)
		req.SetPathValue("puuid", "viewer-puuid")
		w := httptest.NewRecorder()

		handler(w, req)

		require.True(t, *called)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid top", func(t *testing.T) {
		t.Parallel()

		handler, called := makeHandler(t, 0)
		req := httptest.NewRequest(http.MethodGet, "/v1/players/viewer-puuid/mastery?top=many", nil)
		req.SetPathValue("puuid", "viewer-puuid")
		w := httptest.NewRecorder()

		handler(w, req)

		require.False(t, *called)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
