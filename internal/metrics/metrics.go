// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

// Package metrics provides Prometheus instrumentation for the recommendation
// pipeline and the HTTP layer. All collectors are registered with the default
// registry via promauto and exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodscape_prediction_duration_seconds",
			Help:    "Duration of mood predictions in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodscape_predictions_total",
			Help: "Total number of mood predictions by primary mood",
		},
		[]string{"primary_mood"},
	)

	PlaylistSongs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodscape_playlist_songs",
			Help:    "Number of songs in generated playlists",
			Buckets: []float64{1, 3, 5, 10, 15, 20, 30, 50},
		},
	)

	PlaylistDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodscape_playlist_duration_seconds",
			Help:    "Total duration of generated playlists in seconds",
			Buckets: []float64{300, 600, 1200, 1800, 2700, 3600, 7200},
		},
	)

	// Behavior store metrics

	BehaviorSamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodscape_behavior_samples_total",
			Help: "Total number of behavior samples recorded",
		},
	)

	BehaviorStoreErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodscape_behavior_store_errors_total",
			Help: "Total number of behavior store operation failures",
		},
	)

	// HTTP metrics

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodscape_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodscape_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodscape_api_active_requests",
			Help: "Number of API requests currently in flight",
		},
	)
)

// RecordPrediction records one completed mood prediction.
func RecordPrediction(primaryMood string, duration time.Duration) {
	PredictionDuration.Observe(duration.Seconds())
	PredictionsTotal.WithLabelValues(primaryMood).Inc()
}

// RecordPlaylist records the size and duration of one generated playlist.
func RecordPlaylist(songs int, totalSeconds int) {
	PlaylistSongs.Observe(float64(songs))
	PlaylistDurationSeconds.Observe(float64(totalSeconds))
}

// RecordBehaviorSample records one behavior store write.
func RecordBehaviorSample() {
	BehaviorSamplesTotal.Inc()
}

// RecordBehaviorStoreError records one behavior store failure.
func RecordBehaviorStoreError() {
	BehaviorStoreErrors.Inc()
}

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		ActiveRequests.Inc()
	} else {
		ActiveRequests.Dec()
	}
}
