package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/victorgomez09/league-stats/internal/domain"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const (
	defaultPlatform        = domain.Platform("EUW1")
	defaultPort            = "8080"
	defaultRequestCacheTTL = 1 * time.Hour
)

type Config struct {
	riotAPIKey            string
	platform              domain.Platform
	sentryDSN             string
	redisURL              string
	port                  string
	requestCacheTTL       time.Duration
	allowedOriginSuffixes []string
	otelEnabled           bool
	env                   environment
}

func (c *Config) RiotAPIKey() string {
	return c.riotAPIKey
}

// Platform is used when a request does not name one
func (c *Config) Platform() domain.Platform {
	return c.platform
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

// RedisURL is empty when raw matches should not be persisted
func (c *Config) RedisURL() string {
	return c.redisURL
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) RequestCacheTTL() time.Duration {
	return c.requestCacheTTL
}

func (c *Config) AllowedOriginSuffixes() []string {
	return c.allowedOriginSuffixes
}

func (c *Config) OTelEnabled() bool {
	return c.otelEnabled
}

func (c *Config) EnvironmentName() string {
	return string(c.env)
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, platform: %s, port: %s, requestCacheTTL: %s, redis: %t, otel: %t, ...}",
		string(c.env),
		string(c.platform),
		c.port,
		c.requestCacheTTL,
		c.redisURL != "",
		c.otelEnabled,
	)
}

// LoadDotEnv reads variables from the given files without overriding the environment
//
// Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	for _, filename := range filenames {
		err := godotenv.Load(filename)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", filename, err)
		}
	}
	return nil
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}
	invalidValue := func(key string, value string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, value)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("LEAGUESTATS_ENVIRONMENT")
	if !ok {
		return missingKey("LEAGUESTATS_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return invalidValue("LEAGUESTATS_ENVIRONMENT", rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	riotAPIKey := os.Getenv("RIOT_API_KEY")
	sentryDSN := os.Getenv("SENTRY_DSN")
	redisURL := os.Getenv("REDIS_URL")

	platform := defaultPlatform
	if rawPlatform := os.Getenv("RIOT_PLATFORM"); rawPlatform != "" {
		parsed, err := domain.ParsePlatform(rawPlatform)
		if err != nil {
			return invalidValue("RIOT_PLATFORM", rawPlatform)
		}
		platform = parsed
	}

	port := defaultPort
	if rawPort := os.Getenv("PORT"); rawPort != "" {
		if _, err := strconv.ParseUint(rawPort, 10, 16); err != nil {
			return invalidValue("PORT", rawPort)
		}
		port = rawPort
	}

	requestCacheTTL := defaultRequestCacheTTL
	if rawTTL := os.Getenv("REQUEST_CACHE_TTL"); rawTTL != "" {
		parsed, err := time.ParseDuration(rawTTL)
		if err != nil || parsed <= 0 {
			return invalidValue("REQUEST_CACHE_TTL", rawTTL)
		}
		requestCacheTTL = parsed
	}

	var allowedOriginSuffixes []string
	for _, suffix := range strings.Split(os.Getenv("ALLOWED_ORIGIN_SUFFIXES"), ",") {
		suffix = strings.TrimSpace(suffix)
		if suffix != "" {
			allowedOriginSuffixes = append(allowedOriginSuffixes, suffix)
		}
	}

	otelEnabled := false
	if rawOTel := os.Getenv("OTEL_ENABLED"); rawOTel != "" {
		parsed, err := strconv.ParseBool(rawOTel)
		if err != nil {
			return invalidValue("OTEL_ENABLED", rawOTel)
		}
		otelEnabled = parsed
	}

	if env == production || env == staging {
		if riotAPIKey == "" {
			return missingKey("RIOT_API_KEY")
		}
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		riotAPIKey:            riotAPIKey,
		platform:              platform,
		sentryDSN:             sentryDSN,
		redisURL:              redisURL,
		port:                  port,
		requestCacheTTL:       requestCacheTTL,
		allowedOriginSuffixes: allowedOriginSuffixes,
		otelEnabled:           otelEnabled,
		env:                   env,
	}, nil
}
