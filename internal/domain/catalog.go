package domain

import "fmt"

const (
	UnknownItemName     = "Unknown Item"
	UnknownRuneName     = "Unknown Rune"
	UnknownSpellName    = "Unknown"
	UnknownChampionName = "Unknown Champion"
)

type CatalogKind string

const (
	CatalogVersion   CatalogKind = "version"
	CatalogChampions CatalogKind = "champions"
	CatalogItems     CatalogKind = "items"
	CatalogRunes     CatalogKind = "runes"
	CatalogSpells    CatalogKind = "spells"
	CatalogAugments  CatalogKind = "augments"
)

func ParseCatalogKind(raw string) (CatalogKind, error) {
	switch kind := CatalogKind(raw); kind {
	case CatalogVersion, CatalogChampions, CatalogItems, CatalogRunes, CatalogSpells, CatalogAugments:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedCatalogKind, raw)
}

type ChampionInfo struct {
	ID    string // e.g. MonkeyKing
	Key   int
	Name  string // e.g. Wukong
	Title string
}

type ItemInfo struct {
	ID          int
	Name        string
	Description string
	Plaintext   string
	Gold        int
}

type RuneInfo struct {
	ID        int
	Key       string
	Name      string
	ShortDesc string
	LongDesc  string
	Icon      string
}

type RuneTree struct {
	ID    int
	Key   string
	Name  string
	Icon  string
	Slots [][]RuneInfo
}

type SpellInfo struct {
	ID          string // e.g. SummonerFlash
	Key         int
	Name        string
	Description string
}

// Champions is keyed by the champion's numeric key
type Champions map[int]ChampionInfo

type Items map[int]ItemInfo

type Runes []RuneTree

// Spells is keyed by the summoner spell's numeric key
type Spells map[int]SpellInfo

type Augments map[int]Augment

func (c Champions) NameOf(key int) (string, bool) {
	champion, ok := c[key]
	return champion.Name, ok
}

func (i Items) NameOf(id int) string {
	item, ok := i[id]
	if !ok {
		return UnknownItemName
	}
	return item.Name
}

func (s Spells) NameOf(key int) string {
	spell, ok := s[key]
	if !ok {
		return UnknownSpellName
	}
	return spell.Name
}

// TreeName resolves a rune style id, e.g. 8000 -> Precision
func (r Runes) TreeName(styleID int) string {
	for _, tree := range r {
		if tree.ID == styleID {
			return tree.Name
		}
	}
	if name, ok := runeTreeNames[styleID]; ok {
		return name
	}
	return UnknownRuneName
}

// PerkName resolves a keystone or minor rune id
func (r Runes) PerkName(perkID int) string {
	for _, tree := range r {
		for _, slot := range tree.Slots {
			for _, info := range slot {
				if info.ID == perkID {
					return info.Name
				}
			}
		}
	}
	return UnknownRuneName
}

var runeTreeNames = map[int]string{
	8000: "Precision",
	8100: "Domination",
	8200: "Sorcery",
	8300: "Inspiration",
	8400: "Resolve",
}
