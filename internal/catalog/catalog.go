// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

// Package catalog holds the music category and song data the recommendation
// engine draws from. The built-in catalog is embedded at build time;
// deployments can substitute their own YAML file with the same schema.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// defaultAffinity is used for category keys absent from the catalog.
const defaultAffinity = 0.5

// Song is one playable track.
type Song struct {
	Title           string  `json:"title" yaml:"title"`
	Artist          string  `json:"artist" yaml:"artist"`
	Genre           string  `json:"genre" yaml:"genre"`
	DurationSeconds int     `json:"duration_seconds" yaml:"duration_seconds"`
	Mood            string  `json:"mood" yaml:"mood"`
	Intensity       float64 `json:"intensity" yaml:"intensity"`
}

// Category is a music category with its mood affinity and song pool.
type Category struct {
	Key            string   `json:"key" yaml:"-"`
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Affinity       float64  `json:"-" yaml:"affinity"`
	ExampleArtists []string `json:"example_artists" yaml:"example_artists"`
	ExampleTracks  []string `json:"example_tracks" yaml:"example_tracks"`
	Songs          []Song   `json:"-" yaml:"songs"`
}

// Catalog is an immutable view of the loaded catalog data.
type Catalog struct {
	categories map[string]Category
	moods      map[string][]string
	fallback   []string
}

type catalogFile struct {
	Categories map[string]Category `yaml:"categories"`
	Moods      map[string][]string `yaml:"moods"`
	Fallback   []string            `yaml:"fallback"`
}

// Load returns the catalog from path, or the embedded built-in catalog when
// path is empty.
func Load(path string) (*Catalog, error) {
	data := builtinCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %q: %w", path, err)
		}
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}
	if len(file.Fallback) == 0 {
		return nil, fmt.Errorf("catalog has no fallback categories")
	}

	categories := make(map[string]Category, len(file.Categories))
	for key, cat := range file.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("category %q has no name", key)
		}
		if len(cat.Songs) == 0 {
			return nil, fmt.Errorf("category %q has no songs", key)
		}
		for _, song := range cat.Songs {
			if song.DurationSeconds <= 0 {
				return nil, fmt.Errorf("category %q: song %q has non-positive duration", key, song.Title)
			}
		}
		cat.Key = key
		categories[key] = cat
	}

	for mood, keys := range file.Moods {
		for _, key := range keys {
			if _, ok := categories[key]; !ok {
				return nil, fmt.Errorf("mood %q references unknown category %q", mood, key)
			}
		}
	}
	for _, key := range file.Fallback {
		if _, ok := categories[key]; !ok {
			return nil, fmt.Errorf("fallback references unknown category %q", key)
		}
	}

	return &Catalog{
		categories: categories,
		moods:      file.Moods,
		fallback:   file.Fallback,
	}, nil
}

// Category returns the category for key.
func (c *Catalog) Category(key string) (Category, bool) {
	cat, ok := c.categories[key]
	return cat, ok
}

// Songs returns the song pool for a category key, nil when unknown. The
// returned slice is shared; callers must not mutate it.
func (c *Catalog) Songs(key string) []Song {
	return c.categories[key].Songs
}

// Affinity returns a category's base mood-fit score, with a neutral default
// for unknown keys.
func (c *Catalog) Affinity(key string) float64 {
	if cat, ok := c.categories[key]; ok {
		return cat.Affinity
	}
	return defaultAffinity
}

// CandidatesFor returns the ordered category keys for a mood, falling back
// to the catalog's default list for unmapped moods.
func (c *Catalog) CandidatesFor(mood string) []string {
	if keys, ok := c.moods[mood]; ok {
		return keys
	}
	return c.fallback
}

// FallbackKey returns the first fallback category, used for the default
// playlist when nothing else can be recommended.
func (c *Catalog) FallbackKey() string {
	return c.fallback[0]
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}
