package ports

import (
	"log/slog"
	"net/http"

	"github.com/victorgomez09/league-stats/internal/app"
	"github.com/victorgomez09/league-stats/internal/logging"
	"github.com/victorgomez09/league-stats/internal/reporting"
)

func MakeResolveIdentityHandler(
	resolveIdentity app.ResolveIdentity,
	allowedOrigins *OriginPolicy,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("resolve_identity", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		riotID := r.PathValue("riotId")
		ctx = logging.AddMetaToContext(ctx, slog.String("riotId", riotID))
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{"riotId": riotID})

		platform, err := platformFromRequest(r)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		identity, err := resolveIdentity(ctx, platform, riotID)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		writeSuccessResponse(ctx, w, identityToResponse(identity))
	}

	return middleware(handler)
}

func MakeGetRankedEntriesHandler(
	getRankedEntries app.GetRankedEntries,
	allowedOrigins *OriginPolicy,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("get_ranked_entries", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		puuid := r.PathValue("puuid")
		ctx = logging.AddPlayerToContext(ctx, puuid)
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{"puuid": puuid})

		platform, err := platformFromRequest(r)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		entries, err := getRankedEntries(ctx, platform, puuid)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		writeSuccessResponse(ctx, w, rankedEntriesToResponse(entries))
	}

	return middleware(handler)
}

func MakeListRecentMatchesHandler(
	listRecentMatches app.ListRecentMatches,
	allowedOrigins *OriginPolicy,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("list_recent_matches", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		puuid := r.PathValue("puuid")

		platform, err := platformFromRequest(r)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}
		start, count, err := matchPageFromRequest(r)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		ctx = logging.AddPlayerToContext(ctx, puuid)
		ctx = logging.AddMetaToContext(ctx,
			slog.Int("start", start),
			slog.Int("count", count),
		)
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{"puuid": puuid})

		matches, err := listRecentMatches(ctx, platform, puuid, start, count)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		writeSuccessResponse(ctx, w, matchesToResponse(matches, start, count))
	}

	return middleware(handler)
}

func MakeGetAggregatedStatsHandler(
	getAggregatedStats app.GetAggregatedStats,
	allowedOrigins *OriginPolicy,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("get_aggregated_stats", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		puuid := r.PathValue("puuid")

		platform, err := platformFromRequest(r)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}
		start, count, err := matchPageFromRequest(r)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		ctx = logging.AddPlayerToContext(ctx, puuid)
		ctx = logging.AddMetaToContext(ctx,
			slog.Int("start", start),
			slog.Int("count", count),
		)
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{"puuid": puuid})

		stats, err := getAggregatedStats(ctx, platform, puuid, start, count)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		writeSuccessResponse(ctx, w, aggregatedStatsToResponse(stats))
	}

	return middleware(handler)
}

func MakeGetChampionMasteryHandler(
	getChampionMastery app.GetChampionMastery,
	allowedOrigins *OriginPolicy,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("get_champion_mastery", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		puuid := r.PathValue("puuid")
		ctx = logging.AddPlayerToContext(ctx, puuid)
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{"puuid": puuid})

		platform, err := platformFromRequest(r)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}
		top, err := intQueryParam(r, "top", 0)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		masteries, err := getChampionMastery(ctx, platform, puuid, top)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		writeSuccessResponse(ctx, w, masteriesToResponse(masteries))
	}

	return middleware(handler)
}
