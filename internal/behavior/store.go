// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

// Package behavior persists per-user interaction history and derives learned
// signals from it: time-of-day mood patterns, average typing speed, and
// popular tags. Two implementations are provided, an in-memory store for
// tests and single-node deployments without persistence, and a BadgerDB
// store for durable history across restarts.
package behavior

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrClosed is returned by store operations after Close.
var ErrClosed = errors.New("behavior store closed")

// Defaults applied when the corresponding config value is zero.
const (
	// DefaultMaxSamples bounds per-user history; the oldest samples are
	// evicted first.
	DefaultMaxSamples = 100

	// DefaultHourWindow is the half-width in hours of the time-of-day
	// window used by LearnedPattern.
	DefaultHourWindow = 2

	// DefaultTypingSpeed is reported when a user has no recorded typing
	// samples, in characters per second.
	DefaultTypingSpeed = 3.0
)

// Sample is one recorded interaction.
type Sample struct {
	UserID      string    `json:"user_id"`
	Timestamp   time.Time `json:"timestamp"`
	Mood        string    `json:"mood"`
	Tags        []string  `json:"tags,omitempty"`
	TypingSpeed float64   `json:"typing_speed"`
}

// Store is the per-user behavior history. Implementations are safe for
// concurrent use. The LearnedPattern method satisfies the predictor's
// pattern source.
type Store interface {
	// Record appends a sample to the user's history, evicting the oldest
	// sample once the per-user cap is reached.
	Record(ctx context.Context, sample Sample) error

	// LearnedPattern returns the user's observed mood frequencies within
	// the configured window around hour, normalized so the returned values
	// sum to 1. No matching samples yields an empty map and no error.
	//
	// The window does not wrap across midnight: hour 23 matches 21-23 with
	// the default window, not 21-01.
	LearnedPattern(ctx context.Context, userID string, hour int) (map[string]float64, error)

	// AverageTypingSpeed returns the mean typing speed over samples with a
	// positive speed, or DefaultTypingSpeed when there are none.
	AverageTypingSpeed(ctx context.Context, userID string) (float64, error)

	// PopularTags returns the user's most frequent tags across the whole
	// retained history, most frequent first, at most limit entries. Ties
	// resolve alphabetically.
	PopularTags(ctx context.Context, userID string, limit int) ([]string, error)

	// Close releases resources. Operations after Close fail; the in-memory
	// store reports ErrClosed.
	Close() error
}

// inWindow reports whether a sample's hour falls within the non-wrapping
// window [hour-window, hour+window].
func inWindow(sampleHour, hour, window int) bool {
	return sampleHour >= hour-window && sampleHour <= hour+window
}

// learnedPattern aggregates mood frequencies from the samples inside the
// window around hour.
func learnedPattern(samples []Sample, hour, window int) map[string]float64 {
	counts := make(map[string]int)
	total := 0
	for _, s := range samples {
		if s.Mood == "" || !inWindow(s.Timestamp.Hour(), hour, window) {
			continue
		}
		counts[s.Mood]++
		total++
	}

	pattern := make(map[string]float64, len(counts))
	if total == 0 {
		return pattern
	}
	for mood, n := range counts {
		pattern[mood] = float64(n) / float64(total)
	}
	return pattern
}

// averageTypingSpeed computes the mean over positive-speed samples, with
// the default for users who have none.
func averageTypingSpeed(samples []Sample) float64 {
	var sum float64
	n := 0
	for _, s := range samples {
		if s.TypingSpeed > 0 {
			sum += s.TypingSpeed
			n++
		}
	}
	if n == 0 {
		return DefaultTypingSpeed
	}
	return sum / float64(n)
}

// popularTags ranks tags by frequency over the full history.
func popularTags(samples []Sample, limit int) []string {
	counts := make(map[string]int)
	for _, s := range samples {
		for _, tag := range s.Tags {
			if tag != "" {
				counts[tag]++
			}
		}
	}
	if len(counts) == 0 || limit <= 0 {
		return nil
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

// trimOldest drops samples from the front until len(samples) <= max.
func trimOldest(samples []Sample, max int) []Sample {
	if max > 0 && len(samples) > max {
		samples = samples[len(samples)-max:]
	}
	return samples
}
