package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/victorgomez09/league-stats/internal/domain"
)

// defaultWardID is shown when the trinket slot is empty
const defaultWardID = 2052

// Catalog is the static data used to annotate matches
type Catalog interface {
	Items(ctx context.Context) domain.Items
	Runes(ctx context.Context) domain.Runes
	Spells(ctx context.Context) domain.Spells
	Augments(ctx context.Context) domain.Augments
}

type MatchNormalizer struct {
	catalog Catalog
}

func NewMatchNormalizer(catalog Catalog) *MatchNormalizer {
	return &MatchNormalizer{catalog: catalog}
}

// Normalize turns a raw match-v5 payload into the match as seen by puuid
func (n *MatchNormalizer) Normalize(ctx context.Context, raw []byte, puuid string) (domain.CanonicalMatch, error) {
	response, err := parseMatch(raw)
	if err != nil {
		return domain.CanonicalMatch{}, err
	}
	metadata, info := response.Metadata, response.Info

	viewerIndex, err := findViewer(metadata.Participants, puuid)
	if err != nil {
		return domain.CanonicalMatch{}, fmt.Errorf("match %s: %w", metadata.MatchID, err)
	}
	viewer := info.Participants[viewerIndex]

	mode := domain.GameModeForQueue(*info.QueueID)
	items := n.catalog.Items(ctx)

	match := domain.CanonicalMatch{
		MatchID:           metadata.MatchID,
		GameCreation:      time.UnixMilli(*info.GameCreation).UTC(),
		GameDuration:      time.Duration(*info.GameDuration) * time.Second,
		QueueID:           *info.QueueID,
		GameMode:          mode,
		ParticipantNumber: len(info.Participants),
		Participants:      buildParticipants(info.Participants),

		PUUID:            viewer.PUUID,
		Win:              *viewer.Win,
		ChampionName:     *viewer.ChampionName,
		ChampionLevel:    viewer.ChampLevel,
		TeamPosition:     viewer.TeamPosition,
		IsEarlySurrender: viewer.GameEndedInEarlySurrender,
		Kills:            *viewer.Kills,
		Deaths:           *viewer.Deaths,
		Assists:          *viewer.Assists,
		DoubleKills:      viewer.DoubleKills,
		TripleKills:      viewer.TripleKills,
		QuadraKills:      viewer.QuadraKills,
		PentaKills:       viewer.PentaKills,
		MinionsKilled:    viewer.TotalMinionsKilled,
		NeutralMinions:   viewer.NeutralMinionsKilled,
		Gold:             viewer.GoldEarned,
		DamageDealt:      viewer.TotalDamageDealtToChampions,
		DamageTaken:      viewer.TotalDamageTaken,
		VisionScore:      viewer.VisionScore,
		TeamKills:        teamKills(info.Participants, viewerIndex, mode),

		Items: buildItems(items, viewer),
		Ward:  buildWard(items, viewer.Item6),
	}

	if mode == domain.GameModeArena {
		augments, err := buildAugments(n.catalog.Augments(ctx), viewer)
		if err != nil {
			return domain.CanonicalMatch{}, fmt.Errorf("match %s: %w", metadata.MatchID, err)
		}
		match.Augments = augments
		match.Placement = viewer.Placement
		match.SubteamPlacement = viewer.SubteamPlacement
		return match, nil
	}

	spells := n.catalog.Spells(ctx)
	match.Spells = []domain.SummonerSpell{
		{ID: viewer.Summoner1ID, Name: domain.CleanText(spells.NameOf(viewer.Summoner1ID))},
		{ID: viewer.Summoner2ID, Name: domain.CleanText(spells.NameOf(viewer.Summoner2ID))},
	}

	runes := n.catalog.Runes(ctx)
	match.PrimaryRune = buildRuneSelection(runes, viewer.Perks.Styles[0], 4)
	match.SecondaryRune = buildRuneSelection(runes, viewer.Perks.Styles[1], 2)

	return match, nil
}

// findViewer requires puuid to appear exactly once
func findViewer(participants []string, puuid string) (int, error) {
	index := -1
	for i, participant := range participants {
		if participant != puuid {
			continue
		}
		if index != -1 {
			return 0, fmt.Errorf("%w: player appears more than once", domain.ErrMalformedUpstreamData)
		}
		index = i
	}
	if index == -1 {
		return 0, domain.ErrParticipantNotFound
	}
	return index, nil
}

// teamKills sums the kills of the viewer's team
//
// Teams are the two halves of the participant list, or the viewer's subteam in Arena.
func teamKills(participants []matchParticipant, viewerIndex int, mode domain.GameMode) int {
	viewer := participants[viewerIndex]

	total := 0
	if mode == domain.GameModeArena && viewer.PlayerSubteamID != 0 {
		for _, participant := range participants {
			if participant.PlayerSubteamID == viewer.PlayerSubteamID {
				total += *participant.Kills
			}
		}
		return total
	}

	half := len(participants) / 2
	start, end := 0, half
	if viewerIndex >= half {
		start, end = half, len(participants)
	}
	for _, participant := range participants[start:end] {
		total += *participant.Kills
	}
	return total
}

func buildParticipants(participants []matchParticipant) []domain.MatchParticipant {
	result := make([]domain.MatchParticipant, 0, len(participants))
	for _, participant := range participants {
		name := participant.RiotIDGameName
		if name == "" {
			name = participant.SummonerName
		}
		result = append(result, domain.MatchParticipant{
			PUUID:        participant.PUUID,
			SummonerName: name,
			RiotIDName:   participant.RiotIDGameName,
			RiotIDTag:    participant.RiotIDTagline,
			ChampionName: *participant.ChampionName,
			TeamID:       participant.TeamID,
			Win:          *participant.Win,
		})
	}
	return result
}

// buildItems keeps the six inventory slots in order, empty slots have id 0
func buildItems(items domain.Items, participant matchParticipant) []domain.Item {
	ids := []int{participant.Item0, participant.Item1, participant.Item2, participant.Item3, participant.Item4, participant.Item5}

	result := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			result = append(result, domain.Item{})
			continue
		}
		result = append(result, domain.Item{ID: id, Name: domain.CleanText(items.NameOf(id))})
	}
	return result
}

func buildWard(items domain.Items, id int) domain.Item {
	if id == 0 {
		id = defaultWardID
	}
	return domain.Item{ID: id, Name: domain.CleanText(items.NameOf(id))}
}

// buildAugments fails on augments missing from the table rather than showing them unannotated
func buildAugments(table domain.Augments, participant matchParticipant) ([]domain.Augment, error) {
	ids := []int{participant.PlayerAugment1, participant.PlayerAugment2, participant.PlayerAugment3, participant.PlayerAugment4}

	augments := make([]domain.Augment, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		augment, ok := table[id]
		if !ok {
			return nil, fmt.Errorf("%w: augment %d", domain.ErrMissingReferenceData, id)
		}
		augment.Name = domain.CleanText(augment.Name)
		augment.Description = domain.CleanText(augment.Description)
		augments = append(augments, augment)
	}
	return augments, nil
}

func buildRuneSelection(runes domain.Runes, style perkStyle, maxPerks int) domain.RuneSelection {
	selections := style.Selections
	if len(selections) > maxPerks {
		selections = selections[:maxPerks]
	}

	selection := domain.RuneSelection{
		StyleID:   style.Style,
		StyleName: domain.CleanText(runes.TreeName(style.Style)),
		PerkIDs:   make([]int, 0, len(selections)),
		PerkNames: make([]string, 0, len(selections)),
	}
	for _, perk := range selections {
		selection.PerkIDs = append(selection.PerkIDs, perk.Perk)
		selection.PerkNames = append(selection.PerkNames, domain.CleanText(runes.PerkName(perk.Perk)))
	}
	return selection
}
