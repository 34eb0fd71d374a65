package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/victorgomez09/league-stats/internal/adapters/cache"
	"github.com/victorgomez09/league-stats/internal/adapters/ddragon"
	"github.com/victorgomez09/league-stats/internal/adapters/matchstore"
	"github.com/victorgomez09/league-stats/internal/adapters/riotapi"
	"github.com/victorgomez09/league-stats/internal/app"
	"github.com/victorgomez09/league-stats/internal/config"
	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
	"github.com/victorgomez09/league-stats/internal/ports"
	"github.com/victorgomez09/league-stats/internal/processing"
	"github.com/victorgomez09/league-stats/internal/reporting"
	"github.com/victorgomez09/league-stats/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	// Root CAs for the distroless image, Riot and Data Dragon are https only
	_ "golang.org/x/crypto/x509roots/fallback"
)

const serviceName = "league-stats"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instanceID := uuid.New().String()
	logger := slog.New(logging.NewTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil))).With("instanceID", instanceID)

	ctx = logging.AddToContext(ctx, logger)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		fail("Failed to load .env", "error", err.Error())
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	if config.OTelEnabled() {
		shutdownOTel, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			fail("Failed to initialize OpenTelemetry", "error", err.Error())
		}
		defer func() {
			if err := shutdownOTel(context.Background()); err != nil {
				logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
			}
		}()
		logger.Info("Initialized OpenTelemetry")
	}

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	riotAPI, err := riotapi.NewRiotClientOrMock(config, httpClient, time.Now)
	if err != nil {
		fail("Failed to initialize Riot API", "error", err.Error())
	}
	logger.Info("Initialized Riot API", "platform", config.Platform())

	catalog := ddragon.NewCatalog(httpClient, time.Now, ddragon.DefaultTTL)

	store, closeStore, err := matchstore.NewStoreOrNoOp(ctx, config)
	if err != nil {
		fail("Failed to initialize match store", "error", err.Error())
	}
	defer closeStore()
	logger.Info("Initialized match store", "redis", config.RedisURL() != "")

	allowedOrigins, err := ports.NewOriginPolicy(config.IsDevelopment(), config.AllowedOriginSuffixes()...)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}

	cacheTTL := config.RequestCacheTTL()
	identityCache := cache.NewTTLCache[domain.PlayerIdentity](cacheTTL)
	rankedCache := cache.NewTTLCache[[]domain.RankedEntry](cacheTTL)
	matchesCache := cache.NewTTLCache[[]domain.CanonicalMatch](cacheTTL)
	statsCache := cache.NewTTLCache[domain.AggregatedStats](cacheTTL)
	masteryCache := cache.NewTTLCache[[]domain.ChampionMastery](cacheTTL)
	defer func() {
		identityCache.Stop()
		rankedCache.Stop()
		matchesCache.Stop()
		statsCache.Stop()
		masteryCache.Stop()
	}()

	normalizer := processing.NewMatchNormalizer(catalog)

	resolveIdentity := app.BuildResolveIdentityWithCache(identityCache, riotAPI, time.Now)
	getRankedEntries := app.BuildGetRankedEntriesWithCache(rankedCache, riotAPI)
	listRecentMatches := app.BuildListRecentMatchesWithCache(matchesCache, riotAPI, store, normalizer)
	getAggregatedStats := app.BuildGetAggregatedStatsWithCache(statsCache, listRecentMatches)
	getChampionMastery := app.BuildGetChampionMasteryWithCache(masteryCache, riotAPI, catalog)
	getStaticCatalog := app.BuildGetStaticCatalog(catalog)

	mux := http.NewServeMux()
	corsHandler := ports.BuildCORSHandler(allowedOrigins)

	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{
			pattern: "/v1/players/{riotId}",
			handler: ports.MakeResolveIdentityHandler(resolveIdentity, allowedOrigins, logger.With("port", "resolveidentity"), sentryMiddleware),
		},
		{
			pattern: "/v1/players/{puuid}/ranked",
			handler: ports.MakeGetRankedEntriesHandler(getRankedEntries, allowedOrigins, logger.With("port", "ranked"), sentryMiddleware),
		},
		{
			pattern: "/v1/players/{puuid}/matches",
			handler: ports.MakeListRecentMatchesHandler(listRecentMatches, allowedOrigins, logger.With("port", "matches"), sentryMiddleware),
		},
		{
			pattern: "/v1/players/{puuid}/stats",
			handler: ports.MakeGetAggregatedStatsHandler(getAggregatedStats, allowedOrigins, logger.With("port", "stats"), sentryMiddleware),
		},
		{
			pattern: "/v1/players/{puuid}/mastery",
			handler: ports.MakeGetChampionMasteryHandler(getChampionMastery, allowedOrigins, logger.With("port", "mastery"), sentryMiddleware),
		},
		{
			pattern: "/v1/catalog/{kind}",
			handler: ports.MakeGetStaticCatalogHandler(getStaticCatalog, allowedOrigins, logger.With("port", "catalog"), sentryMiddleware),
		},
	}
	for _, route := range routes {
		mux.HandleFunc("OPTIONS "+route.pattern, corsHandler)
		mux.HandleFunc("GET "+route.pattern, route.handler)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port()),
		Handler:           otelhttp.NewHandler(mux, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", "error", err.Error())
		}
	}()

	logger.Info("Init complete")
	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
