// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

// Package config holds all application configuration, loaded once at startup
// via Koanf v2 with layered sources (highest priority wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, path overridable via CONFIG_PATH)
//  3. Environment variables (HTTP_PORT, LOG_LEVEL, BEHAVIOR_STORE, ...)
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Behavior BehaviorConfig `koanf:"behavior"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Engine   EngineConfig   `koanf:"engine"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// APIConfig holds router-level settings: rate limiting and CORS.
type APIConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// BehaviorConfig selects and tunes the behavior store.
//
// Store "memory" keeps per-user histories in process memory (the default);
// "badger" persists them to a BadgerDB directory at Path so learned patterns
// survive restarts.
type BehaviorConfig struct {
	Store      string `koanf:"store"`
	Path       string `koanf:"path"`
	MaxSamples int    `koanf:"max_samples"`
	HourWindow int    `koanf:"hour_window"`
}

// CatalogConfig points at the music catalog document. An empty Path uses the
// embedded catalog.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// EngineConfig tunes the recommendation engine.
type EngineConfig struct {
	DefaultPlaylistMinutes int   `koanf:"default_playlist_minutes"`
	MaxCategories          int   `koanf:"max_categories"`
	Seed                   int64 `koanf:"seed"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
