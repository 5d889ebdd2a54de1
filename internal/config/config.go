// Package config merges defaults, environment variables and command-line
// flags into the service configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dark1alex/lubimyczytac-abs/internal/catalog"
	"github.com/dark1alex/lubimyczytac-abs/internal/throttle"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyPort             = "port"
	KeyBaseURL          = "base-url"
	KeyThrottleInterval = "throttle-interval"
	KeyFetchTimeout     = "fetch-timeout"
	KeyUserAgent        = "user-agent"
	KeyLogLevel         = "log-level"
)

type Config struct {
	Port             string
	BaseURL          string
	ThrottleInterval time.Duration
	FetchTimeout     time.Duration
	UserAgent        string
	LogLevel         slog.Level
}

// Defaults returns the values used when nothing else is configured.
func Defaults() map[string]any {
	return map[string]any{
		KeyPort:             "3000",
		KeyBaseURL:          catalog.DefaultBaseURL,
		KeyThrottleInterval: throttle.DefaultInterval,
		KeyFetchTimeout:     catalog.DefaultTimeout,
		KeyUserAgent:        catalog.DefaultUserAgent,
		KeyLogLevel:         "info",
	}
}

// Load resolves the configuration. Changed flags win over environment
// variables (PORT, BASE_URL, THROTTLE_INTERVAL, ...), which win over defaults.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key := range Defaults() {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
				}
			}
		}
	}

	cfg := &Config{
		Port:             v.GetString(KeyPort),
		BaseURL:          strings.TrimRight(v.GetString(KeyBaseURL), "/"),
		ThrottleInterval: v.GetDuration(KeyThrottleInterval),
		FetchTimeout:     v.GetDuration(KeyFetchTimeout),
		UserAgent:        v.GetString(KeyUserAgent),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyPort)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyBaseURL)
	}
	if cfg.ThrottleInterval <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", KeyThrottleInterval, cfg.ThrottleInterval)
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", KeyFetchTimeout, cfg.FetchTimeout)
	}

	return cfg, nil
}
