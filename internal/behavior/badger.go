// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package behavior

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// historyKeyPrefix namespaces per-user history values in BadgerDB.
const historyKeyPrefix = "history:"

// BadgerStore persists behavior history in BadgerDB. Each user's full
// history lives under a single key as a JSON-encoded sample slice, so an
// append, trim, and write happen in one transaction.
type BadgerStore struct {
	db         *badger.DB
	maxSamples int
	hourWindow int
	logger     zerolog.Logger
}

// NewBadgerStore opens a BadgerDB-backed store at path. An empty path opens
// an in-memory database, which tests use.
func NewBadgerStore(path string, maxSamples, hourWindow int, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return NewBadgerStoreWithDB(db, maxSamples, hourWindow, logger), nil
}

// NewBadgerStoreWithDB wraps an already-open database. The caller keeps
// ownership decisions out of this package's way; Close still closes db.
func NewBadgerStoreWithDB(db *badger.DB, maxSamples, hourWindow int, logger zerolog.Logger) *BadgerStore {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	if hourWindow <= 0 {
		hourWindow = DefaultHourWindow
	}
	return &BadgerStore{
		db:         db,
		maxSamples: maxSamples,
		hourWindow: hourWindow,
		logger:     logger.With().Str("component", "behavior_store").Logger(),
	}
}

// Record appends a sample to the user's stored history in one transaction.
func (s *BadgerStore) Record(_ context.Context, sample Sample) error {
	key := []byte(historyKeyPrefix + sample.UserID)

	err := s.db.Update(func(txn *badger.Txn) error {
		samples, err := readHistory(txn, key)
		if err != nil {
			return err
		}

		samples = trimOldest(append(samples, sample), s.maxSamples)

		data, err := json.Marshal(samples)
		if err != nil {
			return fmt.Errorf("marshal history: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("record sample for %q: %w", sample.UserID, err)
	}
	return nil
}

// LearnedPattern returns normalized mood frequencies around hour.
func (s *BadgerStore) LearnedPattern(_ context.Context, userID string, hour int) (map[string]float64, error) {
	samples, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return learnedPattern(samples, hour, s.hourWindow), nil
}

// AverageTypingSpeed returns the user's mean recorded typing speed.
func (s *BadgerStore) AverageTypingSpeed(_ context.Context, userID string) (float64, error) {
	samples, err := s.load(userID)
	if err != nil {
		return 0, err
	}
	return averageTypingSpeed(samples), nil
}

// PopularTags returns the user's most frequent tags, capped at limit.
func (s *BadgerStore) PopularTags(_ context.Context, userID string, limit int) ([]string, error) {
	samples, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return popularTags(samples, limit), nil
}

// RunGC runs one value-log garbage collection pass. Badger returns
// ErrNoRewrite when there was nothing to collect; that is not an error for
// callers.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("badger value log gc: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger: %w", err)
	}
	return nil
}

func (s *BadgerStore) load(userID string) ([]Sample, error) {
	var samples []Sample
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		samples, err = readHistory(txn, []byte(historyKeyPrefix+userID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load history for %q: %w", userID, err)
	}
	return samples, nil
}

// readHistory decodes the stored sample slice, treating a missing key as an
// empty history.
func readHistory(txn *badger.Txn, key []byte) ([]Sample, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	var samples []Sample
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &samples)
	})
	if err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return samples, nil
}
