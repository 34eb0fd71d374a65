package matchstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorgomez09/league-stats/internal/adapters/matchstore"
	"github.com/victorgomez09/league-stats/internal/config"
)

type mockedRedisClient struct {
	t *testing.T

	getKey    string
	getResult *redis.StringCmd
	getCalled bool

	setKey        string
	setValue      any
	setExpiration time.Duration
	setResult     *redis.StatusCmd
	setCalled     bool
}

func (m *mockedRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.t.Helper()
	require.False(m.t, m.getCalled)
	m.getCalled = true
	m.getKey = key
	return m.getResult
}

func (m *mockedRedisClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.t.Helper()
	require.False(m.t, m.setCalled)
	m.setCalled = true
	m.setKey = key
	m.setValue = value
	m.setExpiration = expiration
	return m.setResult
}

func TestRedisGet(t *testing.T) {
	t.Parallel()

	t.Run("hit", func(t *testing.T) {
		t.Parallel()

		client := &mockedRedisClient{t: t, getResult: redis.NewStringResult(`{"metadata":{}}`, nil)}
		store := matchstore.NewRedis(client, time.Hour)

		raw, ok, err := store.Get(t.Context(), "EUW1_1")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `{"metadata":{}}`, string(raw))
		require.Equal(t, "match:v5:EUW1_1", client.getKey)
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		client := &mockedRedisClient{t: t, getResult: redis.NewStringResult("", redis.Nil)}
		store := matchstore.NewRedis(client, time.Hour)

		raw, ok, err := store.Get(t.Context(), "EUW1_1")
		require.NoError(t, err)
		require.False(t, ok)
		require.Nil(t, raw)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		client := &mockedRedisClient{t: t, getResult: redis.NewStringResult("", assert.AnError)}
		store := matchstore.NewRedis(client, time.Hour)

		_, ok, err := store.Get(t.Context(), "EUW1_1")
		require.ErrorIs(t, err, assert.AnError)
		require.False(t, ok)
	})
}

func TestRedisPut(t *testing.T) {
	t.Parallel()

	t.Run("stored with ttl", func(t *testing.T) {
		t.Parallel()

		client := &mockedRedisClient{t: t, setResult: redis.NewStatusResult("OK", nil)}
		store := matchstore.NewRedis(client, matchstore.DefaultTTL)

		err := store.Put(t.Context(), "KR_42", []byte(`{}`))
		require.NoError(t, err)
		require.True(t, client.setCalled)
		require.Equal(t, "match:v5:KR_42", client.setKey)
		require.Equal(t, []byte(`{}`), client.setValue)
		require.Equal(t, 7*24*time.Hour, client.setExpiration)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		client := &mockedRedisClient{t: t, setResult: redis.NewStatusResult("", assert.AnError)}
		store := matchstore.NewRedis(client, time.Hour)

		err := store.Put(t.Context(), "KR_42", []byte(`{}`))
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestNoOp(t *testing.T) {
	t.Parallel()

	store := matchstore.NewNoOp()

	require.NoError(t, store.Put(t.Context(), "EUW1_1", []byte(`{}`)))

	raw, ok, err := store.Get(t.Context(), "EUW1_1")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, raw)
}

func TestNewStoreOrNoOp(t *testing.T) {
	newConfig := func(t *testing.T, redisURL string) config.Config {
		t.Helper()
		t.Setenv("LEAGUESTATS_ENVIRONMENT", "development")
		t.Setenv("REDIS_URL", redisURL)
		conf, err := config.ConfigFromEnv()
		require.NoError(t, err)
		return conf
	}

	t.Run("no url", func(t *testing.T) {
		store, closeStore, err := matchstore.NewStoreOrNoOp(t.Context(), newConfig(t, ""))
		require.NoError(t, err)
		require.Equal(t, matchstore.NewNoOp(), store)
		require.NoError(t, closeStore())
	})

	t.Run("invalid url", func(t *testing.T) {
		_, _, err := matchstore.NewStoreOrNoOp(t.Context(), newConfig(t, "http://not-redis"))
		require.ErrorIs(t, err, config.ErrInvalidValue)
	})
}
