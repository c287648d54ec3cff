// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodscape/config.yaml",
	"/etc/moodscape/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Behavior: BehaviorConfig{
			Store:      "memory",
			Path:       "",
			MaxSamples: 100,
			HourWindow: 2,
		},
		Catalog: CatalogConfig{
			Path: "", // embedded catalog
		},
		Engine: EngineConfig{
			DefaultPlaylistMinutes: 30,
			MaxCategories:          4,
			Seed:                   42,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file, and
// environment variables, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// CORS origins may arrive as a comma-separated env string
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		cfg.API.CORSOrigins = splitAndTrim(raw)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables map to "" and are skipped, so unrelated environment
// noise never lands in the config tree.
func envTransformFunc(key string) string {
	mappings := map[string]string{
		"http_host":                "server.host",
		"http_port":                "server.port",
		"http_timeout":             "server.timeout",
		"http_shutdown_timeout":    "server.shutdown_timeout",
		"rate_limit_reqs":          "api.rate_limit_reqs",
		"rate_limit_window":        "api.rate_limit_window",
		"behavior_store":           "behavior.store",
		"behavior_path":            "behavior.path",
		"behavior_max_samples":     "behavior.max_samples",
		"behavior_hour_window":     "behavior.hour_window",
		"catalog_path":             "catalog.path",
		"default_playlist_minutes": "engine.default_playlist_minutes",
		"engine_max_categories":    "engine.max_categories",
		"engine_seed":              "engine.seed",
		"log_level":                "logging.level",
		"log_format":               "logging.format",
		"log_caller":               "logging.caller",
	}
	return mappings[strings.ToLower(key)]
}

// splitAndTrim splits a comma-separated string into trimmed parts.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
