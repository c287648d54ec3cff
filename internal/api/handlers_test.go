// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodscape/internal/behavior"
	"github.com/tomtom215/moodscape/internal/catalog"
	"github.com/tomtom215/moodscape/internal/models"
	"github.com/tomtom215/moodscape/internal/mood"
	"github.com/tomtom215/moodscape/internal/recommend"
)

type testServer struct {
	router http.Handler
	store  behavior.Store
}

func newTestServer(t *testing.T, ready func() bool) *testServer {
	t.Helper()

	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}

	store := behavior.NewMemoryStore(100, 2)
	t.Cleanup(func() { _ = store.Close() })

	predictor := mood.NewPredictor(store, zerolog.Nop())
	engine := recommend.NewEngine(predictor, cat, store, recommend.Options{}, zerolog.Nop())

	handler := NewHandler(engine, store, ready)
	router := NewRouter(handler, RouterConfig{
		RateLimitRequests: 0,
		CORSOrigins:       []string{"*"},
	})

	return &testServer{router: router, store: store}
}

func (ts *testServer) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope parses the response envelope, returning the raw data
// payload for further decoding.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantStatus string) json.RawMessage {
	t.Helper()

	var envelope struct {
		Status   string           `json:"status"`
		Data     json.RawMessage  `json:"data"`
		Metadata models.Metadata  `json:"metadata"`
		Error    *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if envelope.Status != wantStatus {
		t.Fatalf("status = %q, want %q (body %s)", envelope.Status, wantStatus, rec.Body.String())
	}
	if envelope.Metadata.Timestamp.IsZero() {
		t.Error("metadata timestamp is zero")
	}
	return envelope.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *models.APIError {
	t.Helper()

	var envelope struct {
		Status string           `json:"status"`
		Error  *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Status != "error" || envelope.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	return envelope.Error
}

func TestRecommendEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.request(t, http.MethodPost, "/api/v1/recommendations", `{
		"text": "studying fr today",
		"typing_speed": 1.5,
		"timestamp": "2026-05-01T02:00:00Z",
		"playlist_minutes": 30
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	data := decodeEnvelope(t, rec, "success")
	var resp recommend.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if resp.Mood.PrimaryMood != mood.Stressed {
		t.Errorf("primary mood = %s, want stressed", resp.Mood.PrimaryMood)
	}
	if len(resp.Categories) == 0 {
		t.Error("no categories")
	}
	if len(resp.Playlist.Songs) == 0 {
		t.Error("empty playlist")
	}
	if resp.Playlist.TotalDurationSeconds < 30*60 {
		t.Errorf("playlist duration = %ds, want at least 1800", resp.Playlist.TotalDurationSeconds)
	}
	if !strings.Contains(resp.Reasoning, "stressed mood") {
		t.Errorf("reasoning = %q", resp.Reasoning)
	}
}

func TestRecommendEndpoint_InvalidJSON(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.request(t, http.MethodPost, "/api/v1/recommendations", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if apiErr := decodeError(t, rec); apiErr.Code != "INVALID_JSON" {
		t.Errorf("error code = %q, want INVALID_JSON", apiErr.Code)
	}
}

func TestRecommendEndpoint_UnknownField(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.request(t, http.MethodPost, "/api/v1/recommendations", `{"text": "hi", "bogus": 1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecommendEndpoint_ValidationFailure(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"negative typing speed", `{"text": "hi", "typing_speed": -1}`},
		{"playlist too long", `{"text": "hi", "playlist_minutes": 481}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.request(t, http.MethodPost, "/api/v1/recommendations", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			if apiErr := decodeError(t, rec); apiErr.Code != "VALIDATION_ERROR" {
				t.Errorf("error code = %q, want VALIDATION_ERROR", apiErr.Code)
			}
		})
	}
}

func TestMoodEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.request(t, http.MethodPost, "/api/v1/recommendations/mood", `{
		"text": "",
		"typing_speed": 3.0,
		"timestamp": "2026-05-01T10:00:00Z"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec, "success")
	var pred mood.Prediction
	if err := json.Unmarshal(data, &pred); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if pred.PrimaryMood != mood.Tired {
		t.Errorf("primary mood = %s, want tired", pred.PrimaryMood)
	}
	if len(pred.Distribution) == 0 {
		t.Error("empty distribution")
	}
}

func TestProfileEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	// Two recorded interactions, then the profile reflects them.
	for i := 0; i < 2; i++ {
		rec := ts.request(t, http.MethodPost, "/api/v1/recommendations", `{
			"text": "studying for my exam",
			"typing_speed": 4.0,
			"timestamp": "2026-05-01T15:00:00Z",
			"tags": ["study", "lofi"],
			"user_id": "u1"
		}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("seed request status = %d", rec.Code)
		}
	}

	rec := ts.request(t, http.MethodGet, "/api/v1/users/u1/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec, "success")
	var profile UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if profile.UserID != "u1" {
		t.Errorf("user_id = %q", profile.UserID)
	}
	if profile.AverageTypingSpeed != 4.0 {
		t.Errorf("average_typing_speed = %v, want 4.0", profile.AverageTypingSpeed)
	}
	if len(profile.PopularTags) != 2 {
		t.Errorf("popular_tags = %v, want two tags", profile.PopularTags)
	}
}

func TestProfileEndpoint_UnknownUser(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.request(t, http.MethodGet, "/api/v1/users/nobody/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	data := decodeEnvelope(t, rec, "success")
	var profile UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if profile.AverageTypingSpeed != behavior.DefaultTypingSpeed {
		t.Errorf("average_typing_speed = %v, want the %v default", profile.AverageTypingSpeed, behavior.DefaultTypingSpeed)
	}
	if len(profile.PopularTags) != 0 {
		t.Errorf("popular_tags = %v, want none", profile.PopularTags)
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		rec := ts.request(t, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestHealthReady_NotReady(t *testing.T) {
	ts := newTestServer(t, func() bool { return false })

	rec := ts.request(t, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if apiErr := decodeError(t, rec); apiErr.Code != "NOT_READY" {
		t.Errorf("error code = %q, want NOT_READY", apiErr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.request(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_") {
		t.Error("metrics body has no collector output")
	}
}

func TestTypingSpeedFallsBackToHistory(t *testing.T) {
	ts := newTestServer(t, nil)

	// Seed history with a fast typist at hour 15.
	seed := ts.request(t, http.MethodPost, "/api/v1/recommendations/mood", `{
		"text": "quick message with plenty of words here",
		"typing_speed": 8.0,
		"timestamp": "2026-05-01T15:00:00Z",
		"user_id": "u1"
	}`)
	if seed.Code != http.StatusOK {
		t.Fatalf("seed status = %d", seed.Code)
	}

	// Same user, no typing speed: the fast historical average should
	// trigger the fast-typing rule rather than the very-slow one.
	rec := ts.request(t, http.MethodPost, "/api/v1/recommendations/mood", `{
		"text": "another message with plenty of words here",
		"timestamp": "2026-05-02T15:00:00Z",
		"user_id": "u1"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	data := decodeEnvelope(t, rec, "success")
	var pred mood.Prediction
	if err := json.Unmarshal(data, &pred); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if pred.Distribution[mood.Energetic] == 0 {
		t.Errorf("distribution = %v, want the fast-typing energetic boost", pred.Distribution)
	}
	if pred.Distribution[mood.Tired] != 0 {
		t.Errorf("distribution = %v, tired should not fire with the fast average", pred.Distribution)
	}
}

func TestRateLimit(t *testing.T) {
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	predictor := mood.NewPredictor(nil, zerolog.Nop())
	engine := recommend.NewEngine(predictor, cat, nil, recommend.Options{}, zerolog.Nop())
	router := NewRouter(NewHandler(engine, nil, nil), RouterConfig{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
		CORSOrigins:       []string{"*"},
	})

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/mood",
			strings.NewReader(`{"text": "hello there friend", "typing_speed": 3}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", last)
	}
}
