// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package recommend

import (
	"math"
	"testing"

	"github.com/tomtom215/moodscape/internal/catalog"
	"github.com/tomtom215/moodscape/internal/mood"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return cat
}

func TestRankCategories_OrderAndScores(t *testing.T) {
	cat := loadCatalog(t)

	pred := mood.Prediction{
		PrimaryMood:  mood.Energetic,
		Confidence:   1.0,
		Distribution: mood.Distribution{mood.Energetic: 1.0},
	}

	ranked := rankCategories(cat, pred, 4)

	// Full confidence leaves affinities unscaled: electronic 0.9, rock
	// 0.85, hiphop 0.8.
	wantKeys := []string{"electronic", "rock", "hiphop"}
	wantScores := []float64{0.9, 0.85, 0.8}
	if len(ranked) != len(wantKeys) {
		t.Fatalf("ranked = %d categories, want %d", len(ranked), len(wantKeys))
	}
	for i := range wantKeys {
		if ranked[i].Key != wantKeys[i] {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].Key, wantKeys[i])
		}
		if math.Abs(ranked[i].Relevance-wantScores[i]) > 1e-9 {
			t.Errorf("ranked[%d].Relevance = %v, want %v", i, ranked[i].Relevance, wantScores[i])
		}
	}
}

func TestRankCategories_SortsByAffinityNotMappingOrder(t *testing.T) {
	cat := loadCatalog(t)

	// The focused mapping lists classical first, but lofi has the higher
	// affinity and must rank above it.
	pred := mood.Prediction{
		PrimaryMood:  mood.Focused,
		Confidence:   0.8,
		Distribution: mood.Distribution{mood.Focused: 0.8},
	}

	ranked := rankCategories(cat, pred, 4)
	wantKeys := []string{"lofi", "ambient", "classical", "jazz"}
	for i := range wantKeys {
		if ranked[i].Key != wantKeys[i] {
			t.Fatalf("ranked keys = %v..., want %v", ranked[i].Key, wantKeys)
		}
	}
}

func TestRankCategories_ConfidenceScaling(t *testing.T) {
	cat := loadCatalog(t)

	pred := mood.Prediction{
		PrimaryMood:  mood.Tired,
		Confidence:   0,
		Distribution: mood.Distribution{mood.Tired: 0},
	}

	ranked := rankCategories(cat, pred, 4)
	// Zero primary score halves every affinity.
	if math.Abs(ranked[0].Relevance-0.45) > 1e-9 {
		t.Errorf("top relevance = %v, want 0.45 (half of lofi's 0.9)", ranked[0].Relevance)
	}
}

func TestRankCategories_CapAndTruncate(t *testing.T) {
	cat := loadCatalog(t)

	pred := mood.Prediction{
		PrimaryMood:  mood.Relaxed,
		Confidence:   0.9,
		Distribution: mood.Distribution{mood.Relaxed: 0.9},
	}

	ranked := rankCategories(cat, pred, 2)
	if len(ranked) != 2 {
		t.Fatalf("ranked = %d categories, want 2", len(ranked))
	}
	for _, rc := range ranked {
		if rc.Relevance < 0 || rc.Relevance > 1 {
			t.Errorf("%s relevance = %v outside [0, 1]", rc.Key, rc.Relevance)
		}
	}
}

func TestRankCategories_UnknownMoodFallsBack(t *testing.T) {
	cat := loadCatalog(t)

	pred := mood.Prediction{
		PrimaryMood:  mood.Happy,
		Confidence:   0.6,
		Distribution: mood.Distribution{mood.Happy: 0.6},
	}

	ranked := rankCategories(cat, pred, 4)
	if len(ranked) != 2 || ranked[0].Key != "lofi" || ranked[1].Key != "ambient" {
		t.Errorf("ranked = %v, want the lofi/ambient fallback", ranked)
	}
}
