package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/catalog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{"PORT", "BASE_URL", "THROTTLE_INTERVAL", "FETCH_TIMEOUT", "USER_AGENT", "LOG_LEVEL"} {
		t.Setenv(env, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "https://lubimyczytac.pl", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.ThrottleInterval)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, catalog.DefaultUserAgent, cfg.UserAgent)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "http://localhost:9999/")
	t.Setenv("THROTTLE_INTERVAL", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.ThrottleInterval)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyPort, "3000", "")
	flags.Duration(KeyFetchTimeout, 30*time.Second, "")
	require.NoError(t, flags.Parse([]string{"--port", "9000", "--fetch-timeout", "5s"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
}

func TestLoadUnchangedFlagKeepsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyPort, "3000", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"LOG_LEVEL":         "loud",
		"THROTTLE_INTERVAL": "0s",
		"FETCH_TIMEOUT":     "-1s",
	}

	for env, value := range tests {
		t.Run(env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(env, value)
			_, err := Load(nil)
			assert.Error(t, err)
		})
	}
}
