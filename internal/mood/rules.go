// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package mood

import (
	"strings"
)

// Context is the structured input to the rules engine.
type Context struct {
	// TypingSpeed is measured in characters per second.
	TypingSpeed float64

	// Hour is the hour of day, 0-23.
	Hour int

	// Text is the raw user text, re-examined for patterns the lexicon
	// scorer does not cover.
	Text string
}

// Typing speed thresholds in characters per second.
const (
	verySlowTyping = 1.0
	slowTyping     = 2.0
	fastTyping     = 6.0
)

// Thresholds above which a lexicon signal triggers its rule.
const lexiconSignalThreshold = 0.3

// studyTerms trigger the focus/stress study rule on substring match.
var studyTerms = []string{"study", "studying", "exam", "test"}

// ApplyRules maps context and lexicon output to six mood adjustments. Every
// adjustment starts at zero, only ever increases, and is clamped to at most
// 1.0 at the end. Rules are independent and additive.
func ApplyRules(ctx Context, lex LexiconScores) Distribution {
	adj := Distribution{
		Tired:     0,
		Stressed:  0,
		Energetic: 0,
		Relaxed:   0,
		Focused:   0,
		Anxious:   0,
	}

	// Typing speed: at most one band fires; 2.0-6.0 cps is neutral.
	switch {
	case ctx.TypingSpeed < verySlowTyping:
		adj[Tired] += 0.4
		adj[Stressed] += 0.2
	case ctx.TypingSpeed < slowTyping:
		adj[Tired] += 0.3
		adj[Focused] += 0.1
	case ctx.TypingSpeed > fastTyping:
		adj[Energetic] += 0.3
		adj[Stressed] += 0.2
	}

	// Hour of day: the five bands cover 0-23 with no gaps or overlaps.
	switch {
	case ctx.Hour >= 23 || ctx.Hour < 4: // late night
		adj[Tired] += 0.5
		adj[Stressed] += 0.2
	case ctx.Hour < 7: // early morning
		adj[Tired] += 0.4
	case ctx.Hour < 12: // morning
		adj[Energetic] += 0.2
		adj[Focused] += 0.2
	case ctx.Hour < 17: // afternoon
		adj[Focused] += 0.1
	default: // evening, 17-22
		adj[Relaxed] += 0.2
	}

	text := strings.ToLower(ctx.Text)

	if containsAny(text, studyTerms) {
		adj[Focused] += 0.3
		adj[Stressed] += 0.2
	}

	// Short, fragmented text suggests tiredness.
	if len(strings.Fields(text)) < 3 {
		adj[Tired] += 0.2
	}

	if strings.Count(text, "!") > 2 {
		adj[Energetic] += 0.2
		adj[Stressed] += 0.1
	}

	// Lexicon-driven rules.
	if lex.Stress > lexiconSignalThreshold {
		adj[Stressed] += 0.3
		adj[Anxious] += 0.2
	}
	if lex.Focus > lexiconSignalThreshold {
		adj[Focused] += 0.3
	}
	if lex.Energy > lexiconSignalThreshold {
		adj[Energetic] += 0.3
	}

	return adj.Clamp()
}
