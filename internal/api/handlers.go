// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

// Package api implements the HTTP interface: recommendation and mood
// endpoints, user profiles, and health probes, all wrapped in the shared
// response envelope.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moodscape/internal/behavior"
	"github.com/tomtom215/moodscape/internal/logging"
	"github.com/tomtom215/moodscape/internal/recommend"
	"github.com/tomtom215/moodscape/internal/validation"
)

// profileTagLimit caps the popular-tags list in user profiles.
const profileTagLimit = 5

// RecommendationRequest is the body of the recommendation and mood
// endpoints. Text may be empty: short or missing text is itself a mood
// signal. A zero typing speed means unmeasured and is replaced by the
// user's historical average when one exists.
type RecommendationRequest struct {
	Text            string    `json:"text"`
	TypingSpeed     float64   `json:"typing_speed" validate:"gte=0"`
	Timestamp       time.Time `json:"timestamp"`
	Tags            []string  `json:"tags" validate:"max=20"`
	UserID          string    `json:"user_id" validate:"max=128"`
	PlaylistMinutes int       `json:"playlist_minutes" validate:"gte=0,lte=480"`
}

// UserProfile summarizes what the service has learned about a user.
type UserProfile struct {
	UserID             string             `json:"user_id"`
	AverageTypingSpeed float64            `json:"average_typing_speed"`
	PopularTags        []string           `json:"popular_tags"`
	CurrentHourPattern map[string]float64 `json:"current_hour_pattern"`
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	engine *recommend.Engine
	store  behavior.Store
	ready  func() bool
}

// NewHandler creates the handler set. store may be nil when history is
// disabled; ready may be nil, in which case readiness always passes.
func NewHandler(engine *recommend.Engine, store behavior.Store, ready func() bool) *Handler {
	return &Handler{engine: engine, store: store, ready: ready}
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	resp := h.engine.Recommend(r.Context(), req)
	respondJSON(w, r, http.StatusOK, resp, start)
}

// PredictMood handles POST /api/v1/recommendations/mood, running only the
// inference stage.
func (h *Handler) PredictMood(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	pred := h.engine.PredictMood(r.Context(), req)
	respondJSON(w, r, http.StatusOK, pred, start)
}

// Profile handles GET /api/v1/users/{userID}/profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "userID is required", nil)
		return
	}
	if h.store == nil {
		respondError(w, r, http.StatusNotFound, "HISTORY_DISABLED", "behavior history is not enabled", nil)
		return
	}

	ctx := r.Context()

	speed, err := h.store.AverageTypingSpeed(ctx, userID)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("profile lookup failed")
		respondError(w, r, http.StatusInternalServerError, "STORE_ERROR", "failed to load user profile", nil)
		return
	}

	tags, err := h.store.PopularTags(ctx, userID, profileTagLimit)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("profile lookup failed")
		respondError(w, r, http.StatusInternalServerError, "STORE_ERROR", "failed to load user profile", nil)
		return
	}

	pattern, err := h.store.LearnedPattern(ctx, userID, time.Now().Hour())
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("profile lookup failed")
		respondError(w, r, http.StatusInternalServerError, "STORE_ERROR", "failed to load user profile", nil)
		return
	}

	respondJSON(w, r, http.StatusOK, UserProfile{
		UserID:             userID,
		AverageTypingSpeed: speed,
		PopularTags:        tags,
		CurrentHourPattern: pattern,
	}, start)
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"}, time.Now())
}

// HealthLive handles GET /api/v1/health/live. The process is alive if it
// can answer at all.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil && !h.ready() {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "service is not ready", nil)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"}, time.Now())
}

// decodeRequest parses, validates, and normalizes the shared request body.
// On failure it writes the error response and returns ok=false.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (recommend.Request, bool) {
	var body RecommendationRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON: "+err.Error(), nil)
		return recommend.Request{}, false
	}

	if verr := validation.ValidateStruct(&body); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return recommend.Request{}, false
	}

	if body.Timestamp.IsZero() {
		body.Timestamp = time.Now()
	}

	// An unmeasured typing speed falls back to the user's historical
	// average so the typing rules still apply sensibly.
	if body.TypingSpeed == 0 && body.UserID != "" && h.store != nil {
		if avg, err := h.store.AverageTypingSpeed(r.Context(), body.UserID); err == nil {
			body.TypingSpeed = avg
		} else {
			logging.Ctx(r.Context()).Warn().Err(err).Str("user_id", body.UserID).
				Msg("typing speed fallback failed")
		}
	}

	return recommend.Request{
		Text:            body.Text,
		TypingSpeed:     body.TypingSpeed,
		Timestamp:       body.Timestamp,
		Tags:            body.Tags,
		UserID:          body.UserID,
		PlaylistMinutes: body.PlaylistMinutes,
	}, true
}
