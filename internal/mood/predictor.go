// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package mood

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// PatternSource supplies learned time-of-day mood patterns for a user.
// Implemented by the behavior store; defined here so the mood package does
// not depend on the storage layer.
type PatternSource interface {
	// LearnedPattern returns a mood-name to probability mapping for the
	// user around the given hour. All-zero values mean no usable history.
	LearnedPattern(ctx context.Context, userID string, hour int) (map[string]float64, error)
}

// Input carries everything one prediction needs.
type Input struct {
	Text        string
	TypingSpeed float64
	Timestamp   time.Time
	UserID      string
}

// Weights for combining lexicon signals into the mood distribution.
const (
	negativeToTired     = 0.3
	stressToStressed    = 0.7
	negativeToStressed  = 0.3
	energyToEnergetic   = 0.7
	positiveToEnergetic = 0.3
	positiveToRelaxed   = 0.5
	focusToFocused      = 0.7
	stressToAnxious     = 0.5
)

// Blend weights when a user has learned history: 70% current signal, 30%
// learned pattern.
const (
	currentWeight = 0.7
	learnedWeight = 0.3
)

// Predictor combines the lexicon scorer, the rules engine, and learned
// behavior patterns into a mood prediction. Safe for concurrent use: it
// holds no per-call state.
type Predictor struct {
	patterns PatternSource
	logger   zerolog.Logger
}

// NewPredictor creates a predictor. patterns may be nil, in which case
// predictions are never blended with history.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPredictor(patterns PatternSource, logger zerolog.Logger) *Predictor {
	return &Predictor{
		patterns: patterns,
		logger:   logger.With().Str("component", "predictor").Logger(),
	}
}

// Predict runs the full inference pipeline. It never fails on in-range
// input; a pattern-source error degrades to the unblended distribution.
func (p *Predictor) Predict(ctx context.Context, in Input) Prediction {
	lex := AnalyzeText(in.Text)
	hour := in.Timestamp.Hour()

	adjustments := ApplyRules(Context{
		TypingSpeed: in.TypingSpeed,
		Hour:        hour,
		Text:        in.Text,
	}, lex)

	combined := combineScores(lex, adjustments)

	final := combined
	if in.UserID != "" && p.patterns != nil {
		learned, err := p.patterns.LearnedPattern(ctx, in.UserID, hour)
		if err != nil {
			p.logger.Warn().Err(err).Str("user_id", in.UserID).
				Msg("learned pattern lookup failed, using unblended distribution")
		} else {
			final = blend(combined, learned)
		}
	}

	primary, confidence := final.Primary()

	p.logger.Debug().
		Str("primary_mood", string(primary)).
		Float64("confidence", confidence).
		Int("hour", hour).
		Msg("mood predicted")

	return Prediction{
		PrimaryMood:  primary,
		Confidence:   confidence,
		Distribution: final,
	}
}

// combineScores merges rule adjustments with weighted lexicon signals into
// the six-key mood distribution, clamped to [0, 1].
func combineScores(lex LexiconScores, adj Distribution) Distribution {
	combined := Distribution{
		Tired:     adj[Tired] + lex.Negative*negativeToTired,
		Stressed:  adj[Stressed] + lex.Stress*stressToStressed + lex.Negative*negativeToStressed,
		Energetic: adj[Energetic] + lex.Energy*energyToEnergetic + lex.Positive*positiveToEnergetic,
		Relaxed:   adj[Relaxed] + lex.Positive*positiveToRelaxed,
		Focused:   adj[Focused] + lex.Focus*focusToFocused,
		Anxious:   adj[Anxious] + lex.Stress*stressToAnxious,
	}
	return combined.Clamp()
}

// blend mixes the current distribution with a learned pattern over the
// union of keys. Both inputs are already in [0, 1], so the weighted sum
// needs no further clamping.
func blend(current Distribution, learned map[string]float64) Distribution {
	blended := make(Distribution, len(current))
	for mood, v := range current {
		blended[mood] = v * currentWeight
	}
	for name, v := range learned {
		mood := Mood(name)
		blended[mood] += v * learnedWeight
	}
	return blended
}
