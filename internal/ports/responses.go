package ports

import (
	"time"

	"github.com/victorgomez09/league-stats/internal/app"
	"github.com/victorgomez09/league-stats/internal/domain"
)

// Response bodies mirror the domain types with json tags

type playerIdentityResponse struct {
	Success       bool      `json:"success"`
	PUUID         string    `json:"puuid"`
	GameName      string    `json:"gameName"`
	TagLine       string    `json:"tagLine"`
	SummonerID    string    `json:"summonerId,omitempty"`
	ProfileIconID int       `json:"profileIconId"`
	SummonerLevel int       `json:"summonerLevel"`
	RevisionDate  time.Time `json:"revisionDate"`
	Degraded      bool      `json:"degraded"`
	ResolvedAt    time.Time `json:"resolvedAt"`
}

func identityToResponse(identity domain.PlayerIdentity) playerIdentityResponse {
	return playerIdentityResponse{
		Success:       true,
		PUUID:         identity.PUUID,
		GameName:      identity.GameName,
		TagLine:       identity.TagLine,
		SummonerID:    identity.LegacySummonerID,
		ProfileIconID: identity.ProfileIconID,
		SummonerLevel: identity.SummonerLevel,
		RevisionDate:  identity.RevisionDate,
		Degraded:      identity.Degraded,
		ResolvedAt:    identity.ResolvedAt,
	}
}

type rankedEntryResponse struct {
	QueueType    string  `json:"queueType"`
	Tier         string  `json:"tier"`
	Rank         string  `json:"rank"`
	LeaguePoints int     `json:"leaguePoints"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
	HotStreak    bool    `json:"hotStreak"`
	Veteran      bool    `json:"veteran"`
	FreshBlood   bool    `json:"freshBlood"`
	Inactive     bool    `json:"inactive"`
}

type rankedEntriesResponse struct {
	Success bool                  `json:"success"`
	Entries []rankedEntryResponse `json:"entries"`
}

func rankedEntriesToResponse(entries []domain.RankedEntry) rankedEntriesResponse {
	converted := make([]rankedEntryResponse, 0, len(entries))
	for _, entry := range entries {
		converted = append(converted, rankedEntryResponse{
			QueueType:    entry.QueueType,
			Tier:         entry.Tier,
			Rank:         entry.Rank,
			LeaguePoints: entry.LeaguePoints,
			Wins:         entry.Wins,
			Losses:       entry.Losses,
			WinRate:      entry.WinRate(),
			HotStreak:    entry.HotStreak,
			Veteran:      entry.Veteran,
			FreshBlood:   entry.FreshBlood,
			Inactive:     entry.Inactive,
		})
	}
	return rankedEntriesResponse{Success: true, Entries: converted}
}

type itemResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type runeSelectionResponse struct {
	StyleID   int      `json:"styleId"`
	StyleName string   `json:"styleName"`
	PerkIDs   []int    `json:"perkIds"`
	PerkNames []string `json:"perkNames"`
}

type augmentResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      int    `json:"rarity"`
	IconPath    string `json:"iconPath"`
}

type participantResponse struct {
	PUUID        string `json:"puuid"`
	SummonerName string `json:"summonerName"`
	RiotIDName   string `json:"riotIdGameName"`
	RiotIDTag    string `json:"riotIdTagline"`
	ChampionName string `json:"championName"`
	TeamID       int    `json:"teamId"`
	Win          bool   `json:"win"`
}

type matchResponse struct {
	MatchID             string                `json:"matchId"`
	GameCreation        time.Time             `json:"gameCreation"`
	GameDurationSeconds int                   `json:"gameDurationSeconds"`
	QueueID             int                   `json:"queueId"`
	GameMode            domain.GameMode       `json:"gameMode"`
	ParticipantNumber   int                   `json:"participantNumber"`
	Participants        []participantResponse `json:"participants"`

	PUUID             string     `json:"puuid"`
	Win               bool       `json:"win"`
	ChampionName      string     `json:"championName"`
	ChampionLevel     int        `json:"championLevel"`
	TeamPosition      string     `json:"teamPosition"`
	EarlySurrender    bool       `json:"earlySurrender"`
	Kills             int        `json:"kills"`
	Deaths            int        `json:"deaths"`
	Assists           int        `json:"assists"`
	KDA               domain.KDA `json:"kda"`
	KDAValue          float64    `json:"kdaValue"`
	KillParticipation float64    `json:"killParticipation"`
	CS                int        `json:"cs"`
	CSPerMinute       float64    `json:"csPerMinute"`
	DoubleKills       int        `json:"doubleKills"`
	TripleKills       int        `json:"tripleKills"`
	QuadraKills       int        `json:"quadraKills"`
	PentaKills        int        `json:"pentaKills"`
	Gold              int        `json:"gold"`
	DamageDealt       int        `json:"damageDealt"`
	DamageTaken       int        `json:"damageTaken"`
	VisionScore       int        `json:"visionScore"`
	TeamKills         int        `json:"teamKills"`

	Items []itemResponse `json:"items"`
	Ward  itemResponse   `json:"ward"`

	Augments         []augmentResponse `json:"augments,omitempty"`
	Placement        int               `json:"placement,omitempty"`
	SubteamPlacement int               `json:"subteamPlacement,omitempty"`

	Spells        []itemResponse         `json:"spells,omitempty"`
	PrimaryRune   *runeSelectionResponse `json:"primaryRune,omitempty"`
	SecondaryRune *runeSelectionResponse `json:"secondaryRune,omitempty"`
}

type matchesResponse struct {
	Success bool            `json:"success"`
	Start   int             `json:"start"`
	Count   int             `json:"count"`
	Matches []matchResponse `json:"matches"`

	// Filtered queues still use up their offsets
	NextStart int `json:"nextStart"`
}

func runeSelectionToResponse(selection domain.RuneSelection) *runeSelectionResponse {
	if selection.StyleID == 0 {
		return nil
	}
	return &runeSelectionResponse{
		StyleID:   selection.StyleID,
		StyleName: selection.StyleName,
		PerkIDs:   selection.PerkIDs,
		PerkNames: selection.PerkNames,
	}
}

func matchToResponse(match domain.CanonicalMatch) matchResponse {
	participants := make([]participantResponse, 0, len(match.Participants))
	for _, participant := range match.Participants {
		participants = append(participants, participantResponse{
			PUUID:        participant.PUUID,
			SummonerName: participant.SummonerName,
			RiotIDName:   participant.RiotIDName,
			RiotIDTag:    participant.RiotIDTag,
			ChampionName: participant.ChampionName,
			TeamID:       participant.TeamID,
			Win:          participant.Win,
		})
	}

	items := make([]itemResponse, 0, len(match.Items))
	for _, item := range match.Items {
		items = append(items, itemResponse{ID: item.ID, Name: item.Name})
	}

	var augments []augmentResponse
	for _, augment := range match.Augments {
		augments = append(augments, augmentResponse{
			ID:          augment.ID,
			Name:        augment.Name,
			Description: augment.Description,
			Rarity:      augment.Rarity,
			IconPath:    augment.IconPath,
		})
	}

	var spells []itemResponse
	for _, spell := range match.Spells {
		spells = append(spells, itemResponse{ID: spell.ID, Name: spell.Name})
	}

	kda := match.KDA()
	return matchResponse{
		MatchID:             match.MatchID,
		GameCreation:        match.GameCreation,
		GameDurationSeconds: int(match.GameDuration.Seconds()),
		QueueID:             match.QueueID,
		GameMode:            match.GameMode,
		ParticipantNumber:   match.ParticipantNumber,
		Participants:        participants,

		PUUID:             match.PUUID,
		Win:               match.Win,
		ChampionName:      match.ChampionName,
		ChampionLevel:     match.ChampionLevel,
		TeamPosition:      match.TeamPosition,
		EarlySurrender:    match.IsEarlySurrender,
		Kills:             match.Kills,
		Deaths:            match.Deaths,
		Assists:           match.Assists,
		KDA:               kda,
		KDAValue:          kda.Value(),
		KillParticipation: match.KillParticipation(),
		CS:                match.CS(),
		CSPerMinute:       domain.RoundTo(match.CSPerMinute(), 2),
		DoubleKills:       match.DoubleKills,
		TripleKills:       match.TripleKills,
		QuadraKills:       match.QuadraKills,
		PentaKills:        match.PentaKills,
		Gold:              match.Gold,
		DamageDealt:       match.DamageDealt,
		DamageTaken:       match.DamageTaken,
		VisionScore:       match.VisionScore,
		TeamKills:         match.TeamKills,

		Items: items,
		Ward:  itemResponse{ID: match.Ward.ID, Name: match.Ward.Name},

		Augments:         augments,
		Placement:        match.Placement,
		SubteamPlacement: match.SubteamPlacement,

		Spells:        spells,
		PrimaryRune:   runeSelectionToResponse(match.PrimaryRune),
		SecondaryRune: runeSelectionToResponse(match.SecondaryRune),
	}
}

func matchesToResponse(matches []domain.CanonicalMatch, start, count int) matchesResponse {
	converted := make([]matchResponse, 0, len(matches))
	for _, match := range matches {
		converted = append(converted, matchToResponse(match))
	}
	return matchesResponse{
		Success:   true,
		Start:     start,
		Count:     count,
		Matches:   converted,
		NextStart: start + count,
	}
}

type championStatsResponse struct {
	ChampionName string     `json:"championName"`
	Games        int        `json:"games"`
	Wins         int        `json:"wins"`
	WinRate      float64    `json:"winRate"`
	Kills        int        `json:"kills"`
	Deaths       int        `json:"deaths"`
	Assists      int        `json:"assists"`
	KDA          domain.KDA `json:"kda"`
}

type aggregatedStatsResponse struct {
	Success              bool                    `json:"success"`
	TotalGames           int                     `json:"totalGames"`
	Wins                 int                     `json:"wins"`
	Losses               int                     `json:"losses"`
	WinRate              float64                 `json:"winRate"`
	Kills                int                     `json:"kills"`
	Deaths               int                     `json:"deaths"`
	Assists              int                     `json:"assists"`
	KDA                  domain.KDA              `json:"kda"`
	KDAValue             float64                 `json:"kdaValue"`
	AvgKills             float64                 `json:"avgKills"`
	AvgDeaths            float64                 `json:"avgDeaths"`
	AvgAssists           float64                 `json:"avgAssists"`
	CS                   int                     `json:"cs"`
	Damage               int                     `json:"damage"`
	DamageTaken          int                     `json:"damageTaken"`
	Gold                 int                     `json:"gold"`
	VisionScore          int                     `json:"visionScore"`
	TotalDurationSeconds int                     `json:"totalDurationSeconds"`
	AvgCSPerMin          float64                 `json:"avgCsPerMin"`
	AvgKillParticipation float64                 `json:"avgKillParticipation"`
	Champions            []championStatsResponse `json:"champions"`
}

func aggregatedStatsToResponse(stats domain.AggregatedStats) aggregatedStatsResponse {
	champions := make([]championStatsResponse, 0, len(stats.ChampionStats))
	for _, champion := range stats.ChampionsByGames() {
		champions = append(champions, championStatsResponse{
			ChampionName: champion.ChampionName,
			Games:        champion.Games,
			Wins:         champion.Wins,
			WinRate:      champion.WinRate(),
			Kills:        champion.Kills,
			Deaths:       champion.Deaths,
			Assists:      champion.Assists,
			KDA:          champion.KDA(),
		})
	}

	kda := stats.KDA()
	return aggregatedStatsResponse{
		Success:              true,
		TotalGames:           stats.TotalGames,
		Wins:                 stats.Wins,
		Losses:               stats.Losses(),
		WinRate:              stats.WinRate(),
		Kills:                stats.Kills,
		Deaths:               stats.Deaths,
		Assists:              stats.Assists,
		KDA:                  kda,
		KDAValue:             kda.Value(),
		AvgKills:             stats.AvgKills(),
		AvgDeaths:            stats.AvgDeaths(),
		AvgAssists:           stats.AvgAssists(),
		CS:                   stats.CS,
		Damage:               stats.Damage,
		DamageTaken:          stats.DamageTaken,
		Gold:                 stats.Gold,
		VisionScore:          stats.VisionScore,
		TotalDurationSeconds: int(stats.TotalDuration.Seconds()),
		AvgCSPerMin:          domain.RoundTo(stats.AvgCSPerMin, 2),
		AvgKillParticipation: domain.RoundTo(stats.AvgKillParticipation, 2),
		Champions:            champions,
	}
}

type masteryResponse struct {
	ChampionID     int       `json:"championId"`
	ChampionName   string    `json:"championName"`
	ChampionLevel  int       `json:"championLevel"`
	ChampionPoints int       `json:"championPoints"`
	LastPlayTime   time.Time `json:"lastPlayTime"`
}

type masteriesResponse struct {
	Success   bool              `json:"success"`
	Masteries []masteryResponse `json:"masteries"`
}

func masteriesToResponse(masteries []domain.ChampionMastery) masteriesResponse {
	converted := make([]masteryResponse, 0, len(masteries))
	for _, mastery := range masteries {
		converted = append(converted, masteryResponse{
			ChampionID:     mastery.ChampionID,
			ChampionName:   mastery.ChampionName,
			ChampionLevel:  mastery.ChampionLevel,
			ChampionPoints: mastery.ChampionPoints,
			LastPlayTime:   mastery.LastPlayTime,
		})
	}
	return masteriesResponse{Success: true, Masteries: converted}
}

type championInfoResponse struct {
	ID    string `json:"id"`
	Key   int    `json:"key"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type itemInfoResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Plaintext   string `json:"plaintext"`
	Gold        int    `json:"gold"`
}

type runeInfoResponse struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	ShortDesc string `json:"shortDesc"`
	LongDesc  string `json:"longDesc"`
	Icon      string `json:"icon"`
}

type runeTreeResponse struct {
	ID    int                  `json:"id"`
	Key   string               `json:"key"`
	Name  string               `json:"name"`
	Icon  string               `json:"icon"`
	Slots [][]runeInfoResponse `json:"slots"`
}

type spellInfoResponse struct {
	ID          string `json:"id"`
	Key         int    `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type staticCatalogResponse struct {
	Success bool               `json:"success"`
	Kind    domain.CatalogKind `json:"kind"`
	Version string             `json:"version"`
	Data    any                `json:"data"`
}

func staticCatalogToResponse(catalog app.StaticCatalog) staticCatalogResponse {
	return staticCatalogResponse{
		Success: true,
		Kind:    catalog.Kind,
		Version: catalog.Version,
		Data:    catalogDataToResponse(catalog.Data),
	}
}

func catalogDataToResponse(data any) any {
	switch data := data.(type) {
	case domain.Champions:
		converted := make(map[int]championInfoResponse, len(data))
		for key, champion := range data {
			converted[key] = championInfoResponse{
				ID:    champion.ID,
				Key:   champion.Key,
				Name:  champion.Name,
				Title: champion.Title,
			}
		}
		return converted
	case domain.Items:
		converted := make(map[int]itemInfoResponse, len(data))
		for id, item := range data {
			converted[id] = itemInfoResponse{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Plaintext:   item.Plaintext,
				Gold:        item.Gold,
			}
		}
		return converted
	case domain.Runes:
		converted := make([]runeTreeResponse, 0, len(data))
		for _, tree := range data {
			slots := make([][]runeInfoResponse, 0, len(tree.Slots))
			for _, slot := range tree.Slots {
				runes := make([]runeInfoResponse, 0, len(slot))
				for _, info := range slot {
					runes = append(runes, runeInfoResponse{
						ID:        info.ID,
						Key:       info.Key,
						Name:      info.Name,
						ShortDesc: info.ShortDesc,
						LongDesc:  info.LongDesc,
						Icon:      info.Icon,
					})
				}
				slots = append(slots, runes)
			}
			converted = append(converted, runeTreeResponse{
				ID:    tree.ID,
				Key:   tree.Key,
				Name:  tree.Name,
				Icon:  tree.Icon,
				Slots: slots,
			})
		}
		return converted
	case domain.Spells:
		converted := make(map[int]spellInfoResponse, len(data))
		for key, spell := range data {
			converted[key] = spellInfoResponse{
				ID:          spell.ID,
				Key:         spell.Key,
				Name:        spell.Name,
				Description: spell.Description,
			}
		}
		return converted
	case domain.Augments:
		converted := make(map[int]augmentResponse, len(data))
		for id, augment := range data {
			converted[id] = augmentResponse{
				ID:          augment.ID,
				Name:        augment.Name,
				Description: augment.Description,
				Rarity:      augment.Rarity,
				IconPath:    augment.IconPath,
			}
		}
		return converted
	}
	// version
	return data
}
