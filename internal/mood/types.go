// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

// Package mood implements the mood inference pipeline: lexicon-based text
// scoring, rule-based contextual adjustment, and the predictor that blends
// both with a user's learned time-of-day patterns into a single mood
// distribution.
package mood

// Mood is a named emotional state.
type Mood string

// The fixed mood enumeration. moodPriority below breaks ties in this order,
// so the order here is part of the contract.
const (
	Tired     Mood = "tired"
	Stressed  Mood = "stressed"
	Energetic Mood = "energetic"
	Relaxed   Mood = "relaxed"
	Focused   Mood = "focused"
	Anxious   Mood = "anxious"
	Happy     Mood = "happy"
	Sad       Mood = "sad"
)

// moodPriority is the deterministic tie-break order for primary mood
// selection. Map iteration order is not stable, so selection never depends
// on it.
var moodPriority = []Mood{Tired, Stressed, Energetic, Relaxed, Focused, Anxious, Happy, Sad}

// Distribution maps moods to scores. Scores are independent confidences in
// [0, 1]; they are not required to sum to 1.
type Distribution map[Mood]float64

// Clamp limits every value to the [0, 1] range in place and returns the
// distribution for chaining.
func (d Distribution) Clamp() Distribution {
	for mood, v := range d {
		d[mood] = clamp01(v)
	}
	return d
}

// Primary returns the highest-scoring mood and its score. Ties resolve by
// the fixed priority order. An empty distribution defaults to Relaxed with
// score 0.
func (d Distribution) Primary() (Mood, float64) {
	if len(d) == 0 {
		return Relaxed, 0
	}

	best := Mood("")
	bestScore := -1.0
	for _, mood := range moodPriority {
		if score, ok := d[mood]; ok && score > bestScore {
			best = mood
			bestScore = score
		}
	}
	// Keys outside the known enumeration are still considered, after the
	// enumerated ones.
	for mood, score := range d {
		if score > bestScore {
			best = mood
			bestScore = score
		}
	}

	if best == "" {
		return Relaxed, 0
	}
	return best, bestScore
}

// Prediction is the result of one inference call. It is immutable once
// returned.
type Prediction struct {
	PrimaryMood  Mood         `json:"primary_mood"`
	Confidence   float64      `json:"confidence"`
	Distribution Distribution `json:"distribution"`
}

// clamp01 limits v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
