// Package config resolves client settings from defaults, an optional
// ~/.bookerang.yaml file, and environment variables, in that order of
// precedence (env wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults match the server contract the browser client shipped with.
const (
	DefaultAPIBaseURL = "http://localhost:8080"
	DefaultRadius     = 3000
	DefaultCacheTTL   = 5 * time.Minute
)

// Config carries every tunable of the client.
type Config struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	Radius      int           `yaml:"radius"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	SessionFile string        `yaml:"session_file"`
	LogLevel    string        `yaml:"log_level"`
}

// Load builds the effective configuration.
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL: DefaultAPIBaseURL,
		Radius:     DefaultRadius,
		CacheTTL:   DefaultCacheTTL,
		LogLevel:   "info",
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".bookerang.yaml")
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("BOOKERANG_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BOOKERANG_RADIUS"); v != "" {
		radius, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BOOKERANG_RADIUS %q: %w", v, err)
		}
		cfg.Radius = radius
	}
	if v := os.Getenv("BOOKERANG_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BOOKERANG_CACHE_TTL %q: %w", v, err)
		}
		cfg.CacheTTL = ttl
	}
	if v := os.Getenv("BOOKERANG_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
