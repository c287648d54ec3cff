// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

// Package recommend turns a mood prediction into ranked music categories and
// a duration-constrained playlist.
package recommend

import (
	"time"

	"github.com/tomtom215/moodscape/internal/catalog"
	"github.com/tomtom215/moodscape/internal/mood"
)

// Default request parameters.
const (
	// DefaultPlaylistMinutes is used when a request does not specify a
	// playlist length.
	DefaultPlaylistMinutes = 30

	// DefaultMaxCategories caps the ranked category list.
	DefaultMaxCategories = 4

	// DefaultSeed seeds the playlist shuffle for reproducible output.
	DefaultSeed = 42
)

// Request is one recommendation request after transport-level validation.
type Request struct {
	Text            string    `json:"text"`
	TypingSpeed     float64   `json:"typing_speed"`
	Timestamp       time.Time `json:"timestamp"`
	Tags            []string  `json:"tags,omitempty"`
	UserID          string    `json:"user_id,omitempty"`
	PlaylistMinutes int       `json:"playlist_minutes"`
}

// RankedCategory is a catalog category with its relevance for this request.
type RankedCategory struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Relevance      float64  `json:"relevance"`
	ExampleArtists []string `json:"example_artists"`
	ExampleTracks  []string `json:"example_tracks"`
}

// Playlist is an assembled song sequence.
type Playlist struct {
	Name                 string         `json:"name"`
	Mood                 string         `json:"mood"`
	Songs                []catalog.Song `json:"songs"`
	TotalDurationSeconds int            `json:"total_duration_seconds"`
}

// Response is the full recommendation result.
type Response struct {
	Mood       mood.Prediction  `json:"mood"`
	Categories []RankedCategory `json:"categories"`
	Playlist   Playlist         `json:"playlist"`
	Reasoning  string           `json:"reasoning"`
}
