package matchstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/victorgomez09/league-stats/internal/config"
	"github.com/victorgomez09/league-stats/internal/logging"
)

// DefaultTTL applies to raw match payloads, which never change once a match is over
const DefaultTTL = 7 * 24 * time.Hour

// Store keeps raw match-v5 payloads by match id
type Store interface {
	Get(ctx context.Context, matchID string) ([]byte, bool, error)
	Put(ctx context.Context, matchID string, raw []byte) error
}

type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type Redis struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedis(client RedisClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func matchKey(matchID string) string {
	return fmt.Sprintf("match:v5:%s", matchID)
}

func (r *Redis) Get(ctx context.Context, matchID string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, matchKey(matchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get match %s from redis: %w", matchID, err)
	}
	return raw, true, nil
}

func (r *Redis) Put(ctx context.Context, matchID string, raw []byte) error {
	if err := r.client.Set(ctx, matchKey(matchID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store match %s in redis: %w", matchID, err)
	}
	return nil
}

type noOp struct{}

// NewNoOp never finds a match and discards writes
func NewNoOp() Store {
	return noOp{}
}

func (noOp) Get(ctx context.Context, matchID string) ([]byte, bool, error) {
	return nil, false, nil
}

func (noOp) Put(ctx context.Context, matchID string, raw []byte) error {
	return nil
}

// NewStoreOrNoOp connects to REDIS_URL when it is set
//
// Call the returned close function on shutdown.
func NewStoreOrNoOp(ctx context.Context, conf config.Config) (Store, func() error, error) {
	logger := logging.FromContext(ctx)

	if conf.RedisURL() == "" {
		logger.InfoContext(ctx, "No redis configured, raw matches will not be persisted")
		return NewNoOp(), func() error { return nil }, nil
	}

	options, err := redis.ParseURL(conf.RedisURL())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to parse redis url: %w", config.ErrInvalidValue, err)
	}
	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.InfoContext(ctx, "Connected to redis", "addr", options.Addr, "db", options.DB)
	return NewRedis(client, DefaultTTL), client.Close, nil
}
