// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package config

import (
	"fmt"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}

	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be at least 1, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive, got %s", c.API.RateLimitWindow)
	}

	switch c.Behavior.Store {
	case "memory":
	case "badger":
		if c.Behavior.Path == "" {
			return fmt.Errorf("behavior.path is required when behavior.store is badger")
		}
	default:
		return fmt.Errorf("behavior.store must be memory or badger, got %q", c.Behavior.Store)
	}
	if c.Behavior.MaxSamples < 1 {
		return fmt.Errorf("behavior.max_samples must be at least 1, got %d", c.Behavior.MaxSamples)
	}
	if c.Behavior.HourWindow < 0 || c.Behavior.HourWindow > 12 {
		return fmt.Errorf("behavior.hour_window must be between 0 and 12, got %d", c.Behavior.HourWindow)
	}

	if c.Engine.DefaultPlaylistMinutes < 1 || c.Engine.DefaultPlaylistMinutes > 480 {
		return fmt.Errorf("engine.default_playlist_minutes must be between 1 and 480, got %d",
			c.Engine.DefaultPlaylistMinutes)
	}
	if c.Engine.MaxCategories < 1 {
		return fmt.Errorf("engine.max_categories must be at least 1, got %d", c.Engine.MaxCategories)
	}

	return nil
}
