package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorgomez09/league-stats/internal/adapters/cache"
	"github.com/victorgomez09/league-stats/internal/app"
	"github.com/victorgomez09/league-stats/internal/domain"
)

func rawMatch(id string, queueID int) []byte {
	return fmt.Appendf(nil, `{"id":%q,"info":{"queueId":%d}}`, id, queueID)
}

func matchIDs(count int) []string {
	ids := make([]string, 0, count)
	for i := range count {
		ids = append(ids, fmt.Sprintf("EUW1_%d", 1000+i))
	}
	return ids
}

type mockedMatchProvider struct {
	t *testing.T

	ids       []string
	idsErr    error
	idsCalled int

	mu         sync.Mutex
	raws       map[string][]byte
	errs       map[string]error
	delays     map[string]time.Duration
	matchCalls map[string]int
}

func newMockedMatchProvider(t *testing.T, ids []string) *mockedMatchProvider {
	raws := make(map[string][]byte, len(ids))
	for _, id := range ids {
		raws[id] = rawMatch(id, 420)
	}
	return &mockedMatchProvider{
		t:          t,
		ids:        ids,
		raws:       raws,
		errs:       map[string]error{},
		delays:     map[string]time.Duration{},
		matchCalls: map[string]int{},
	}
}

func (m *mockedMatchProvider) GetMatchIDs(ctx context.Context, platform domain.Platform, puuid string, start, count int) ([]string, error) {
	m.t.Helper()
	require.Equal(m.t, domain.Platform("EUW1"), platform)
	require.Equal(m.t, "viewer-puuid", puuid)

	m.idsCalled++
	return m.ids, m.idsErr
}

func (m *mockedMatchProvider) GetMatch(ctx context.Context, platform domain.Platform, matchID string) ([]byte, error) {
	m.mu.Lock()
	m.matchCalls[matchID]++
	raw, err, delay := m.raws[matchID], m.errs[matchID], m.delays[matchID]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return raw, err
}

func (m *mockedMatchProvider) callsFor(matchID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchCalls[matchID]
}

type mockedMatchStore struct {
	mu     sync.Mutex
	stored map[string][]byte
	getErr error
	putErr error
}

func (s *mockedMatchStore) Get(ctx context.Context, matchID string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	raw, ok := s.stored[matchID]
	return raw, ok, nil
}

func (s *mockedMatchStore) Put(ctx context.Context, matchID string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	if s.stored == nil {
		s.stored = map[string][]byte{}
	}
	s.stored[matchID] = raw
	return nil
}

type mockedNormalizer struct {
	err error
}

func (n *mockedNormalizer) Normalize(ctx context.Context, raw []byte, puuid string) (domain.CanonicalMatch, error) {
	if n.err != nil {
		return domain.CanonicalMatch{}, n.err
	}
	var decoded struct {
		ID   string `json:"id"`
		Info struct {
			QueueID int `json:"queueId"`
		} `json:"info"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.CanonicalMatch{}, err
	}
	return domain.CanonicalMatch{MatchID: decoded.ID, QueueID: decoded.Info.QueueID, PUUID: puuid}, nil
}

func matchIDsOf(matches []domain.CanonicalMatch) []string {
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, match.MatchID)
	}
	return ids
}

func TestBuildListRecentMatchesWithCache(t *testing.T) {
	t.Parallel()

	t.Run("keeps the order of the match ids", func(t *testing.T) {
		t.Parallel()

		ids := matchIDs(10)
		provider := newMockedMatchProvider(t, ids)
		// Finish in reverse order
		for i, id := range ids {
			provider.delays[id] = time.Duration(len(ids)-i) * 2 * time.Millisecond
		}
		store := &mockedMatchStore{}
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, store, &mockedNormalizer{})

		matches, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 10)
		require.NoError(t, err)
		require.Equal(t, ids, matchIDsOf(matches))
		for _, match := range matches {
			require.Equal(t, "viewer-puuid", match.PUUID)
		}

		// Fetched matches are persisted
		require.Len(t, store.stored, 10)
	})

	t.Run("one failing match fails the page", func(t *testing.T) {
		t.Parallel()

		ids := matchIDs(10)
		provider := newMockedMatchProvider(t, ids)
		provider.errs[ids[5]] = &domain.UpstreamStatusError{StatusCode: 500}
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, &mockedMatchStore{}, &mockedNormalizer{})

		matches, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 10)
		require.ErrorIs(t, err, domain.ErrUpstream)
		require.ErrorContains(t, err, ids[5])
		require.Nil(t, matches)
	})

	t.Run("excluded queues are dropped", func(t *testing.T) {
		t.Parallel()

		ids := matchIDs(4)
		provider := newMockedMatchProvider(t, ids)
		provider.raws[ids[1]] = rawMatch(ids[1], 1810)
		provider.raws[ids[3]] = rawMatch(ids[3], 1820)
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, &mockedMatchStore{}, &mockedNormalizer{})

		matches, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 4)
		require.NoError(t, err)
		require.Equal(t, []string{ids[0], ids[2]}, matchIDsOf(matches))
	})

	t.Run("stored matches skip the provider", func(t *testing.T) {
		t.Parallel()

		ids := matchIDs(3)
		provider := newMockedMatchProvider(t, ids)
		store := &mockedMatchStore{stored: map[string][]byte{
			ids[0]: rawMatch(ids[0], 420),
		}}
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, store, &mockedNormalizer{})

		matches, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 3)
		require.NoError(t, err)
		require.Equal(t, ids, matchIDsOf(matches))
		require.Equal(t, 0, provider.callsFor(ids[0]))
		require.Equal(t, 1, provider.callsFor(ids[1]))
		require.Equal(t, 1, provider.callsFor(ids[2]))
	})

	t.Run("store failures are not fatal", func(t *testing.T) {
		t.Parallel()

		ids := matchIDs(2)
		provider := newMockedMatchProvider(t, ids)
		store := &mockedMatchStore{getErr: assert.AnError, putErr: assert.AnError}
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, store, &mockedNormalizer{})

		matches, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 2)
		require.NoError(t, err)
		require.Equal(t, ids, matchIDsOf(matches))
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		provider := newMockedMatchProvider(t, []string{})
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, &mockedMatchStore{}, &mockedNormalizer{})

		matches, err := list(t.Context(), "EUW1", "viewer-puuid", 40, 10)
		require.NoError(t, err)
		require.Empty(t, matches)
	})

	t.Run("id listing failure", func(t *testing.T) {
		t.Parallel()

		provider := newMockedMatchProvider(t, nil)
		provider.idsErr = &domain.RateLimitError{RetryAfter: 3 * time.Second}
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, &mockedMatchStore{}, &mockedNormalizer{})

		_, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 10)
		require.ErrorIs(t, err, domain.ErrRateLimitExceeded)
	})

	t.Run("normalization failure", func(t *testing.T) {
		t.Parallel()

		ids := matchIDs(2)
		provider := newMockedMatchProvider(t, ids)
		normalizer := &mockedNormalizer{err: domain.ErrParticipantNotFound}
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, &mockedMatchStore{}, normalizer)

		_, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 2)
		require.ErrorIs(t, err, domain.ErrParticipantNotFound)
	})

	t.Run("unreadable match", func(t *testing.T) {
		t.Parallel()

		ids := matchIDs(1)
		provider := newMockedMatchProvider(t, ids)
		provider.raws[ids[0]] = []byte(`{"info":{}}`)
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, &mockedMatchStore{}, &mockedNormalizer{})

		_, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 1)
		require.ErrorIs(t, err, domain.ErrMalformedUpstreamData)
	})

	t.Run("invalid pages", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name  string
			puuid string
			start int
			count int
		}{
			{name: "negative start", puuid: "viewer-puuid", start: -1, count: 10},
			{name: "zero count", puuid: "viewer-puuid", start: 0, count: 0},
			{name: "count too large", puuid: "viewer-puuid", start: 0, count: domain.MaxMatchCount + 1},
			{name: "empty puuid", puuid: "", start: 0, count: 10},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				t.Parallel()

				provider := newMockedMatchProvider(t, nil)
				list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, &mockedMatchStore{}, &mockedNormalizer{})

				_, err := list(t.Context(), "EUW1", c.puuid, c.start, c.count)
				require.ErrorIs(t, err, domain.ErrInvalidArgument)
				require.Equal(t, 0, provider.idsCalled)
			})
		}
	})

	t.Run("pages are cached", func(t *testing.T) {
		t.Parallel()

		ids := matchIDs(3)
		provider := newMockedMatchProvider(t, ids)
		list := app.BuildListRecentMatchesWithCache(cache.NewBasicCache[[]domain.CanonicalMatch](), provider, &mockedMatchStore{}, &mockedNormalizer{})

		first, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 3)
		require.NoError(t, err)
		second, err := list(t.Context(), "EUW1", "viewer-puuid", 0, 3)
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, 1, provider.idsCalled)
		require.Equal(t, 1, provider.callsFor(ids[0]))
	})
}
