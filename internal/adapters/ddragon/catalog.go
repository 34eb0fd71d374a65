package ddragon

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
	"github.com/victorgomez09/league-stats/internal/reporting"
	"golang.org/x/sync/singleflight"
)

// FallbackVersion is served while the version list is unavailable
const FallbackVersion = "14.24.1"

const (
	DefaultTTL = 1 * time.Hour
	// RetryBackoff is how long a failed fetch is remembered before it is retried
	RetryBackoff = 1 * time.Minute

	refreshTimeout = 10 * time.Second
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type snapshot[T any] struct {
	value     T
	version   string
	expiresAt time.Time
}

// Catalog lazily loads static game data and keeps each kind for ttl
//
// Snapshots are replaced wholesale so readers never see a partial update.
// A failed fetch serves the previous snapshot if there is one, an empty catalog
// otherwise, and is not retried until RetryBackoff has passed.
type Catalog struct {
	httpClient HttpClient
	nowFunc    func() time.Time
	ttl        time.Duration

	version   atomic.Pointer[snapshot[string]]
	champions atomic.Pointer[snapshot[domain.Champions]]
	items     atomic.Pointer[snapshot[domain.Items]]
	runes     atomic.Pointer[snapshot[domain.Runes]]
	spells    atomic.Pointer[snapshot[domain.Spells]]
	augments  atomic.Pointer[snapshot[domain.Augments]]

	refreshes singleflight.Group
}

func NewCatalog(httpClient HttpClient, nowFunc func() time.Time, ttl time.Duration) *Catalog {
	return &Catalog{
		httpClient: httpClient,
		nowFunc:    nowFunc,
		ttl:        ttl,
	}
}

func (c *Catalog) isFresh(expiresAt time.Time) bool {
	return c.nowFunc().Before(expiresAt)
}

// refresh runs fetch once for all concurrent callers of key
//
// The fetch is detached from the caller that started it, so a cancelled request
// does not fail the others. A caller whose context ends stops waiting and gets ok=false.
func refresh[T any](ctx context.Context, c *Catalog, key string, fetch func(ctx context.Context) T) (T, bool) {
	results := c.refreshes.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return fetch(fetchCtx), nil
	})

	select {
	case result := <-results:
		return result.Val.(T), true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

func fallbackVersion(previous *snapshot[string]) string {
	if previous != nil {
		return previous.value
	}
	return FallbackVersion
}

// Version is the latest patch, e.g. 14.24.1
func (c *Catalog) Version(ctx context.Context) string {
	current := c.version.Load()
	if current != nil && c.isFresh(current.expiresAt) {
		return current.value
	}

	version, ok := refresh(ctx, c, string(domain.CatalogVersion), c.refreshVersion)
	if !ok {
		return fallbackVersion(current)
	}
	return version
}

func (c *Catalog) refreshVersion(ctx context.Context) string {
	version, err := c.fetchVersion(ctx)
	if err != nil {
		fallback := fallbackVersion(c.version.Load())
		logging.FromContext(ctx).WarnContext(ctx, "Failed to fetch version list, using fallback", "fallback", fallback, "error", err.Error())
		reporting.Report(ctx, fmt.Errorf("failed to fetch data dragon versions: %w", err))
		c.version.Store(&snapshot[string]{value: fallback, version: fallback, expiresAt: c.nowFunc().Add(RetryBackoff)})
		return fallback
	}
	c.version.Store(&snapshot[string]{value: version, version: version, expiresAt: c.nowFunc().Add(c.ttl)})
	return version
}

func (c *Catalog) Champions(ctx context.Context) domain.Champions {
	return load(ctx, c, domain.CatalogChampions, &c.champions, c.fetchChampions, domain.Champions{})
}

func (c *Catalog) Items(ctx context.Context) domain.Items {
	return load(ctx, c, domain.CatalogItems, &c.items, c.fetchItems, domain.Items{})
}

func (c *Catalog) Runes(ctx context.Context) domain.Runes {
	return load(ctx, c, domain.CatalogRunes, &c.runes, c.fetchRunes, domain.Runes{})
}

func (c *Catalog) Spells(ctx context.Context) domain.Spells {
	return load(ctx, c, domain.CatalogSpells, &c.spells, c.fetchSpells, domain.Spells{})
}

// Augments come from CommunityDragon, which only publishes the latest patch
func (c *Catalog) Augments(ctx context.Context) domain.Augments {
	return load(ctx, c, domain.CatalogAugments, &c.augments, c.fetchAugments, domain.Augments{})
}

// load returns the stored snapshot while it is fresh and its version is current
func load[T any](
	ctx context.Context,
	c *Catalog,
	kind domain.CatalogKind,
	slot *atomic.Pointer[snapshot[T]],
	fetch func(ctx context.Context, version string) (T, error),
	empty T,
) T {
	version := c.Version(ctx)
	current := slot.Load()
	if current != nil && current.version == version && c.isFresh(current.expiresAt) {
		return current.value
	}

	value, ok := refresh(ctx, c, fmt.Sprintf("%s@%s", kind, version), func(ctx context.Context) T {
		value, err := fetch(ctx, version)
		if err == nil {
			slot.Store(&snapshot[T]{value: value, version: version, expiresAt: c.nowFunc().Add(c.ttl)})
			return value
		}

		logger := logging.FromContext(ctx)
		reporting.Report(ctx, fmt.Errorf("failed to fetch %s catalog: %w", kind, err), map[string]string{
			"version": version,
		})
		served := empty
		if previous := slot.Load(); previous != nil {
			logger.WarnContext(ctx, "Failed to refresh static catalog, serving the previous one", "kind", string(kind), "version", previous.version, "error", err.Error())
			served = previous.value
		} else {
			logger.WarnContext(ctx, "Failed to fetch static catalog, using an empty one", "kind", string(kind), "version", version, "error", err.Error())
		}
		slot.Store(&snapshot[T]{value: served, version: version, expiresAt: c.nowFunc().Add(RetryBackoff)})
		return served
	})
	if !ok {
		if current != nil {
			return current.value
		}
		return empty
	}
	return value
}
