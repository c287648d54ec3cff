// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is implemented by stores with a periodic maintenance
// pass, such as BadgerDB value-log GC.
type GarbageCollector interface {
	RunGC(discardRatio float64) error
}

// Default GC cadence and badger discard ratio.
const (
	defaultGCInterval     = 5 * time.Minute
	defaultGCDiscardRatio = 0.5
)

// GCService periodically runs store garbage collection while supervised.
type GCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewGCService creates the maintenance service. interval <= 0 uses the
// default cadence.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *GCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &GCService{
		gc:       gc,
		interval: interval,
		logger:   logger.With().Str("component", "store_gc").Logger(),
	}
}

// Serve implements suture.Service. GC failures are logged and retried on
// the next tick rather than crashing the service.
func (s *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.gc.RunGC(defaultGCDiscardRatio); err != nil {
				s.logger.Warn().Err(err).Msg("store gc pass failed")
			} else {
				s.logger.Debug().Msg("store gc pass completed")
			}
		}
	}
}

// String identifies the service in supervision logs.
func (s *GCService) String() string {
	return "store-gc"
}
