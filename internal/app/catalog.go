package app

import (
	"context"

	"github.com/victorgomez09/league-stats/internal/domain"
)

// StaticCatalog is one kind of static data at the version it was loaded for
type StaticCatalog struct {
	Kind    domain.CatalogKind
	Version string
	Data    any
}

type GetStaticCatalog func(ctx context.Context, kind domain.CatalogKind) (StaticCatalog, error)

type staticCatalog interface {
	Version(ctx context.Context) string
	Champions(ctx context.Context) domain.Champions
	Items(ctx context.Context) domain.Items
	Runes(ctx context.Context) domain.Runes
	Spells(ctx context.Context) domain.Spells
	Augments(ctx context.Context) domain.Augments
}

// BuildGetStaticCatalog serves the catalog's own snapshots, which are already cached
//
// Catalog failures degrade to empty data, so only an unknown kind is an error.
func BuildGetStaticCatalog(catalog staticCatalog) GetStaticCatalog {
	return func(ctx context.Context, kind domain.CatalogKind) (StaticCatalog, error) {
		version := catalog.Version(ctx)

		var data any
		switch kind {
		case domain.CatalogVersion:
			data = version
		case domain.CatalogChampions:
			data = catalog.Champions(ctx)
		case domain.CatalogItems:
			data = catalog.Items(ctx)
		case domain.CatalogRunes:
			data = catalog.Runes(ctx)
		case domain.CatalogSpells:
			data = catalog.Spells(ctx)
		case domain.CatalogAugments:
			data = catalog.Augments(ctx)
		default:
			_, err := domain.ParseCatalogKind(string(kind))
			return StaticCatalog{}, err
		}

		return StaticCatalog{Kind: kind, Version: version, Data: data}, nil
	}
}
