// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package mood

import (
	"strings"
)

// LexiconScores holds the five independent text signals produced by the
// lexicon scorer. Values are normally in [0, 1] but the intensifier boost
// can push them up to 1.2; the predictor clamps after combination.
type LexiconScores struct {
	Positive float64
	Negative float64
	Stress   float64
	Focus    float64
	Energy   float64
}

// Keyword sets for lexicon scoring. Matching is per-token after lowercasing
// and stripping non-alphabetic characters.
var (
	positiveWords = wordSet(
		"happy", "great", "awesome", "amazing", "love", "excited", "good", "nice",
		"wonderful", "fantastic", "excellent", "perfect", "best", "yeah", "yes",
	)

	negativeWords = wordSet(
		"sad", "bad", "hate", "terrible", "awful", "worst", "angry", "frustrated",
		"tired", "exhausted", "stressed", "anxious", "worried", "depressed", "sick",
	)

	stressWords = wordSet(
		"stress", "stressed", "pressure", "deadline", "exam", "test", "work", "busy",
		"overwhelmed", "fr", "fuck", "damn", "ugh", "argh",
	)

	focusWords = wordSet(
		"study", "studying", "focus", "concentrate", "work", "homework", "assignment",
		"reading", "learning", "exam", "test",
	)

	energyWords = wordSet(
		"energy", "energetic", "pumped", "ready", "go", "let's", "party", "dance",
		"workout", "exercise", "run", "gym",
	)

	// Substring matches against the full lowercased text. The trailing
	// space on "so " and "no " is deliberate.
	intensifiers = []string{"very", "really", "so ", "extremely"}
	negations    = []string{"not ", "no ", "don't", "can't"}
)

// Per-match score weights. Positive/negative words are common enough to
// weigh lighter than the targeted stress/focus/energy indicators.
const (
	sentimentWeight = 0.3
	signalWeight    = 0.4

	intensifierBoost = 1.2
	negationBoost    = 0.2
)

// AnalyzeText scores raw text against the five keyword sets. It is a pure
// function: empty or blank text yields all-zero scores, and identical input
// always yields identical output.
func AnalyzeText(text string) LexiconScores {
	if strings.TrimSpace(text) == "" {
		return LexiconScores{}
	}

	lower := strings.ToLower(text)

	var positive, negative, stress, focus, energy int
	for _, token := range strings.Fields(lower) {
		word := stripNonAlpha(token)
		if positiveWords[word] {
			positive++
		}
		if negativeWords[word] {
			negative++
		}
		if stressWords[word] {
			stress++
		}
		if focusWords[word] {
			focus++
		}
		if energyWords[word] {
			energy++
		}
	}

	scores := LexiconScores{
		Positive: capAt1(float64(positive) * sentimentWeight),
		Negative: capAt1(float64(negative) * sentimentWeight),
		Stress:   capAt1(float64(stress) * signalWeight),
		Focus:    capAt1(float64(focus) * signalWeight),
		Energy:   capAt1(float64(energy) * signalWeight),
	}

	if containsAny(lower, intensifiers) {
		// No re-clamp here: consumers clamp after combination.
		scores.Positive *= intensifierBoost
		scores.Negative *= intensifierBoost
		scores.Stress *= intensifierBoost
		scores.Focus *= intensifierBoost
		scores.Energy *= intensifierBoost
	}

	if containsAny(lower, negations) {
		scores.Negative = capAt1(scores.Negative + negationBoost)
	}

	return scores
}

// stripNonAlpha removes every character outside a-z from an already
// lowercased token.
func stripNonAlpha(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// capAt1 limits v to at most 1.0.
func capAt1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// wordSet builds a membership set from words.
func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
