// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package recommend

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodscape/internal/behavior"
	"github.com/tomtom215/moodscape/internal/catalog"
	"github.com/tomtom215/moodscape/internal/metrics"
	"github.com/tomtom215/moodscape/internal/mood"
)

// Options tune engine behavior; zero values fall back to the defaults.
type Options struct {
	PlaylistMinutes int
	MaxCategories   int
	Seed            int64
}

// Engine runs the full pipeline: predict the mood, rank categories, assemble
// a playlist, explain the result, and record the interaction. Safe for
// concurrent use.
type Engine struct {
	predictor *mood.Predictor
	catalog   *catalog.Catalog
	store     behavior.Store
	asm       *assembler

	defaultMinutes int
	maxCategories  int
	logger         zerolog.Logger
}

// NewEngine creates an engine. store may be nil, in which case interactions
// are not recorded and predictions are never personalized.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(predictor *mood.Predictor, cat *catalog.Catalog, store behavior.Store, opts Options, logger zerolog.Logger) *Engine {
	if opts.PlaylistMinutes <= 0 {
		opts.PlaylistMinutes = DefaultPlaylistMinutes
	}
	if opts.MaxCategories <= 0 {
		opts.MaxCategories = DefaultMaxCategories
	}

	return &Engine{
		predictor:      predictor,
		catalog:        cat,
		store:          store,
		asm:            newAssembler(cat, opts.Seed),
		defaultMinutes: opts.PlaylistMinutes,
		maxCategories:  opts.MaxCategories,
		logger:         logger.With().Str("component", "engine").Logger(),
	}
}

// Recommend runs the full pipeline for one request.
func (e *Engine) Recommend(ctx context.Context, req Request) Response {
	pred := e.predict(ctx, req)

	ranked := rankCategories(e.catalog, pred, e.maxCategories)

	minutes := req.PlaylistMinutes
	if minutes <= 0 {
		minutes = e.defaultMinutes
	}
	playlist := e.asm.assemble(ranked, pred.PrimaryMood, minutes)

	metrics.RecordPlaylist(len(playlist.Songs), playlist.TotalDurationSeconds)

	e.recordInteraction(ctx, req, pred)

	e.logger.Info().
		Str("primary_mood", string(pred.PrimaryMood)).
		Float64("confidence", pred.Confidence).
		Int("categories", len(ranked)).
		Int("playlist_songs", len(playlist.Songs)).
		Int("playlist_seconds", playlist.TotalDurationSeconds).
		Msg("recommendation generated")

	return Response{
		Mood:       pred,
		Categories: ranked,
		Playlist:   playlist,
		Reasoning:  buildReasoning(pred, ranked),
	}
}

// PredictMood runs only the inference stage. The interaction is still
// recorded so mood-only clients contribute to learned patterns.
func (e *Engine) PredictMood(ctx context.Context, req Request) mood.Prediction {
	pred := e.predict(ctx, req)
	e.recordInteraction(ctx, req, pred)
	return pred
}

func (e *Engine) predict(ctx context.Context, req Request) mood.Prediction {
	start := time.Now()
	pred := e.predictor.Predict(ctx, mood.Input{
		Text:        req.Text,
		TypingSpeed: req.TypingSpeed,
		Timestamp:   req.Timestamp,
		UserID:      req.UserID,
	})
	metrics.RecordPrediction(string(pred.PrimaryMood), time.Since(start))
	return pred
}

// recordInteraction appends the prediction outcome to the user's history.
// Store failures are logged and counted, never surfaced: a recommendation
// must not fail because history could not be written.
func (e *Engine) recordInteraction(ctx context.Context, req Request, pred mood.Prediction) {
	if e.store == nil || req.UserID == "" {
		return
	}

	err := e.store.Record(ctx, behavior.Sample{
		UserID:      req.UserID,
		Timestamp:   req.Timestamp,
		Mood:        string(pred.PrimaryMood),
		Tags:        req.Tags,
		TypingSpeed: req.TypingSpeed,
	})
	if err != nil {
		metrics.RecordBehaviorStoreError()
		e.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to record behavior sample")
		return
	}
	metrics.RecordBehaviorSample()
}
