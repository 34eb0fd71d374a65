package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/victorgomez09/league-stats/internal/adapters/cache"
	"github.com/victorgomez09/league-stats/internal/adapters/ddragon"
	"github.com/victorgomez09/league-stats/internal/adapters/matchstore"
	"github.com/victorgomez09/league-stats/internal/adapters/riotapi"
	"github.com/victorgomez09/league-stats/internal/app"
	"github.com/victorgomez09/league-stats/internal/config"
	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
	"github.com/victorgomez09/league-stats/internal/processing"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-platform EUW1] <gameName#tagLine> [count]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	rawPlatform := flag.String("platform", "", "platform to query, defaults to RIOT_PLATFORM")
	verbose := flag.Bool("v", false, "log upstream requests")
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		os.Exit(2)
	}

	count := domain.DefaultMatchCount
	if flag.NArg() == 2 {
		parsed, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatalf("Invalid count %q: %v", flag.Arg(1), err)
		}
		count = parsed
	}

	var platform domain.Platform
	if *rawPlatform != "" {
		parsed, err := domain.ParsePlatform(*rawPlatform)
		if err != nil {
			log.Fatal(err)
		}
		platform = parsed
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	conf, err := config.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ctx := logging.AddToContext(context.Background(), logger)

	httpClient := &http.Client{Timeout: 10 * time.Second}
	riotAPI, err := riotapi.NewRiotClientOrMock(conf, httpClient, time.Now)
	if err != nil {
		log.Fatalf("Failed to initialize Riot API: %v", err)
	}
	catalog := ddragon.NewCatalog(httpClient, time.Now, ddragon.DefaultTTL)

	resolveIdentity := app.BuildResolveIdentityWithCache(cache.NewBasicCache[domain.PlayerIdentity](), riotAPI, time.Now)
	listRecentMatches := app.BuildListRecentMatchesWithCache(
		cache.NewBasicCache[[]domain.CanonicalMatch](),
		riotAPI,
		matchstore.NewNoOp(),
		processing.NewMatchNormalizer(catalog),
	)
	getAggregatedStats := app.BuildGetAggregatedStatsWithCache(cache.NewBasicCache[domain.AggregatedStats](), listRecentMatches)

	identity, err := resolveIdentity(ctx, platform, flag.Arg(0))
	if err != nil {
		log.Fatalf("%s (%v)", domain.UserMessage(err), err)
	}
	if identity.Degraded {
		fmt.Fprintln(os.Stderr, "Summoner profile unavailable, showing match stats only")
	}

	stats, err := getAggregatedStats(ctx, platform, identity.PUUID, 0, count)
	if err != nil {
		log.Fatalf("%s (%v)", domain.UserMessage(err), err)
	}

	printStats(identity, stats)
}

func printStats(identity domain.PlayerIdentity, stats domain.AggregatedStats) {
	name := identity.GameName
	if identity.TagLine != "" {
		name = fmt.Sprintf("%s#%s", identity.GameName, identity.TagLine)
	}
	fmt.Printf("%s (level %d)\n", name, identity.SummonerLevel)

	if stats.TotalGames == 0 {
		fmt.Println("No recent matches")
		return
	}

	fmt.Printf("Games: %d  Wins: %d  Losses: %d  Win rate: %.2f%%\n", stats.TotalGames, stats.Wins, stats.Losses(), stats.WinRate())
	fmt.Printf("KDA: %s  (%.2f / %.2f / %.2f)\n", stats.KDA(), stats.AvgKills(), stats.AvgDeaths(), stats.AvgAssists())
	fmt.Printf("CS/min: %.2f  Kill participation: %.2f%%\n", stats.AvgCSPerMin, stats.AvgKillParticipation)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Champion\tGames\tWin rate\tKDA")
	for _, champion := range stats.ChampionsByGames() {
		fmt.Fprintf(w, "%s\t%d\t%.2f%%\t%s\n", champion.ChampionName, champion.Games, champion.WinRate(), champion.KDA())
	}
	w.Flush()
}
