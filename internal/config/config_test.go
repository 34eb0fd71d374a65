package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/victorgomez09/league-stats/internal/config"
	"github.com/victorgomez09/league-stats/internal/domain"
)

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

var requiredOutsideDevelopment = []string{"RIOT_API_KEY", "SENTRY_DSN"}

var optionalVariables = []string{"RIOT_PLATFORM", "REDIS_URL", "PORT", "REQUEST_CACHE_TTL", "ALLOWED_ORIGIN_SUFFIXES", "OTEL_ENABLED"}

func clearOptional(t *testing.T) {
	t.Helper()
	for _, variable := range optionalVariables {
		t.Setenv(variable, "")
	}
}

func TestGetConfig(t *testing.T) {
	t.Run("ensure base environment is clean", func(t *testing.T) {
		t.Run("environment is missing", func(t *testing.T) {
			// LEAGUESTATS_ENVIRONMENT is required, so this should fail
			_, err := config.ConfigFromEnv()
			require.ErrorIs(t, err, config.ErrMissingRequiredValue)
		})

		t.Run("development environment uses defaults", func(t *testing.T) {
			t.Setenv("LEAGUESTATS_ENVIRONMENT", "development")
			for _, variable := range requiredOutsideDevelopment {
				t.Setenv(variable, "")
			}
			clearOptional(t)

			conf, err := config.ConfigFromEnv()
			require.NoError(t, err)
			require.True(t, conf.IsDevelopment())
			require.Equal(t, "development", conf.EnvironmentName())
			require.Empty(t, conf.RiotAPIKey())
			require.Empty(t, conf.SentryDSN())
			require.Empty(t, conf.RedisURL())
			require.Equal(t, domain.Platform("EUW1"), conf.Platform())
			require.Equal(t, "8080", conf.Port())
			require.Equal(t, time.Hour, conf.RequestCacheTTL())
			require.Empty(t, conf.AllowedOriginSuffixes())
			require.False(t, conf.OTelEnabled())
		})
	})

	t.Run("values are read correctly", func(t *testing.T) {
		t.Setenv("RIOT_API_KEY", "RGAPI-key")
		t.Setenv("SENTRY_DSN", "https://sentry.example/1")
		t.Setenv("RIOT_PLATFORM", " kr ")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("PORT", "9000")
		t.Setenv("REQUEST_CACHE_TTL", "15m")
		t.Setenv("ALLOWED_ORIGIN_SUFFIXES", "example.com, localhost ,,")
		t.Setenv("OTEL_ENABLED", "true")

		for _, env := range []environment{production, staging, development} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("LEAGUESTATS_ENVIRONMENT", string(env))

				conf, err := config.ConfigFromEnv()
				require.NoError(t, err)
				require.Equal(t, "RGAPI-key", conf.RiotAPIKey())
				require.Equal(t, "https://sentry.example/1", conf.SentryDSN())
				require.Equal(t, domain.Platform("KR"), conf.Platform())
				require.Equal(t, "redis://localhost:6379/0", conf.RedisURL())
				require.Equal(t, "9000", conf.Port())
				require.Equal(t, 15*time.Minute, conf.RequestCacheTTL())
				require.Equal(t, []string{"example.com", "localhost"}, conf.AllowedOriginSuffixes())
				require.True(t, conf.OTelEnabled())
				require.Equal(t, env == production, conf.IsProduction())
				require.Equal(t, env == staging, conf.IsStaging())
				require.Equal(t, env == development, conf.IsDevelopment())
				require.Equal(t, string(env), conf.EnvironmentName())
			})
		}
	})

	t.Run("production and staging fail when missing variables", func(t *testing.T) {
		for _, variable := range requiredOutsideDevelopment {
			t.Setenv(variable, "placeholder_value")
		}
		clearOptional(t)

		for _, env := range []environment{production, staging} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("LEAGUESTATS_ENVIRONMENT", string(env))

				for _, variable := range requiredOutsideDevelopment {
					t.Run(variable, func(t *testing.T) {
						t.Setenv(variable, "")

						_, err := config.ConfigFromEnv()
						require.ErrorIs(t, err, config.ErrMissingRequiredValue)
					})
				}
			})
		}
	})

	t.Run("invalid environment", func(t *testing.T) {
		for _, env := range []string{"", "invalid", "my-env"} {
			t.Run(env, func(t *testing.T) {
				t.Setenv("LEAGUESTATS_ENVIRONMENT", env)
				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrInvalidValue)
			})
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := []struct {
			variable string
			value    string
		}{
			{variable: "RIOT_PLATFORM", value: "MOON1"},
			{variable: "PORT", value: "http"},
			{variable: "PORT", value: "70000"},
			{variable: "REQUEST_CACHE_TTL", value: "soon"},
			{variable: "REQUEST_CACHE_TTL", value: "-1m"},
			{variable: "OTEL_ENABLED", value: "maybe"},
		}
		for _, c := range cases {
			t.Run(c.variable+"="+c.value, func(t *testing.T) {
				t.Setenv("LEAGUESTATS_ENVIRONMENT", "development")
				clearOptional(t)
				t.Setenv(c.variable, c.value)

				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrInvalidValue)
			})
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing files are ignored", func(t *testing.T) {
		err := config.LoadDotEnv(filepath.Join(t.TempDir(), "does-not-exist.env"))
		require.NoError(t, err)
	})

	t.Run("values are loaded without overriding the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		err := os.WriteFile(path, []byte("REDIS_URL=redis://from-file:6379\nPORT=1234\n"), 0o600)
		require.NoError(t, err)

		t.Setenv("REDIS_URL", "")
		t.Setenv("PORT", "4321")
		// Only unset variables are filled from the file
		require.NoError(t, os.Unsetenv("REDIS_URL"))

		require.NoError(t, config.LoadDotEnv(path))
		require.Equal(t, "redis://from-file:6379", os.Getenv("REDIS_URL"))
		require.Equal(t, "4321", os.Getenv("PORT"))
	})
}
