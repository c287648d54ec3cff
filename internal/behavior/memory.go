// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package behavior

import (
	"context"
	"sync"
)

// MemoryStore keeps behavior history in process memory. Histories are
// partitioned per user, each with its own lock, so concurrent requests for
// different users never contend.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]*userHistory
	maxSamples int
	hourWindow int
	closed     bool
}

type userHistory struct {
	mu      sync.Mutex
	samples []Sample
}

// NewMemoryStore creates an in-memory store. maxSamples and hourWindow fall
// back to the package defaults when zero or negative.
func NewMemoryStore(maxSamples, hourWindow int) *MemoryStore {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	if hourWindow <= 0 {
		hourWindow = DefaultHourWindow
	}
	return &MemoryStore{
		users:      make(map[string]*userHistory),
		maxSamples: maxSamples,
		hourWindow: hourWindow,
	}
}

// Record appends a sample to the user's history.
func (s *MemoryStore) Record(_ context.Context, sample Sample) error {
	history, err := s.history(sample.UserID, true)
	if err != nil {
		return err
	}

	history.mu.Lock()
	defer history.mu.Unlock()
	history.samples = trimOldest(append(history.samples, sample), s.maxSamples)
	return nil
}

// LearnedPattern returns normalized mood frequencies around hour.
func (s *MemoryStore) LearnedPattern(_ context.Context, userID string, hour int) (map[string]float64, error) {
	samples, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}
	return learnedPattern(samples, hour, s.hourWindow), nil
}

// AverageTypingSpeed returns the user's mean recorded typing speed.
func (s *MemoryStore) AverageTypingSpeed(_ context.Context, userID string) (float64, error) {
	samples, err := s.snapshot(userID)
	if err != nil {
		return 0, err
	}
	return averageTypingSpeed(samples), nil
}

// PopularTags returns the user's most frequent tags, capped at limit.
func (s *MemoryStore) PopularTags(_ context.Context, userID string, limit int) ([]string, error) {
	samples, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}
	return popularTags(samples, limit), nil
}

// Close marks the store closed. It never fails.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.users = nil
	return nil
}

// history returns the user's history bucket, creating it when create is set.
func (s *MemoryStore) history(userID string, create bool) (*userHistory, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrClosed
	}
	history, ok := s.users[userID]
	s.mu.RUnlock()
	if ok || !create {
		return history, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if history, ok = s.users[userID]; !ok {
		history = &userHistory{}
		s.users[userID] = history
	}
	return history, nil
}

// snapshot copies the user's samples so derivations run without holding the
// history lock.
func (s *MemoryStore) snapshot(userID string) ([]Sample, error) {
	history, err := s.history(userID, false)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, nil
	}

	history.mu.Lock()
	defer history.mu.Unlock()
	out := make([]Sample, len(history.samples))
	copy(out, history.samples)
	return out, nil
}
