package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/metrics"
	"blackbox/flightlog/internal/models/dtos"
	"blackbox/flightlog/internal/models/entities"
	"blackbox/flightlog/internal/providers"
	"blackbox/flightlog/internal/services"
)

// Prometheus collectors register globally; one registry serves every test
// in the package.
var testMetrics = metrics.NewMetricsRegistry()

type stubLocationProvider struct{}

func (stubLocationProvider) RequestPermission(ctx context.Context) (bool, error) { return true, nil }
func (stubLocationProvider) CurrentFix(ctx context.Context) (*providers.Fix, error) {
	return &providers.Fix{Latitude: 39.9, Longitude: 116.4}, nil
}

type stubRecorder struct {
	tracks []*entities.FlightTrack
}

func (r *stubRecorder) InsertTrack(ctx context.Context, track *entities.FlightTrack) (int64, error) {
	r.tracks = append(r.tracks, track)
	return int64(len(r.tracks)), nil
}

type stubLister struct{}

func (stubLister) ListAll(ctx context.Context) ([]entities.FlightTrack, error) { return nil, nil }

func newSessionFixture() (*services.FlightSessionService, *services.RadarStatsService, *stubRecorder) {
	recorder := &stubRecorder{}
	session := services.NewFlightSessionService(common.NewMemoryKVStore(), stubLocationProvider{}, recorder)
	radar := services.NewRadarStatsService(stubLister{}, common.NewCacheService(300, 600), nil)
	return session, radar, recorder
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dtos.APIResponse {
	t.Helper()
	var resp dtos.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	return resp
}

func TestFlightLifecycleOverHTTP(t *testing.T) {
	session, radar, recorder := newSessionFixture()

	// Start
	rec := httptest.NewRecorder()
	StartFlightHandler(session, testMetrics)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/start", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Start: expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Status != "ok" || resp.Message != "Flight started" {
		t.Fatalf("Unexpected start response: %+v", resp)
	}

	// State while flying
	rec = httptest.NewRecorder()
	FlightStateHandler(session)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/flight/state", nil))
	resp = decodeResponse(t, rec)
	state, _ := json.Marshal(resp.Data)
	var status dtos.SessionStatus
	if err := json.Unmarshal(state, &status); err != nil {
		t.Fatalf("State payload mismatch: %v", err)
	}
	if !status.IsFlying || status.State != string(services.StateFlying) {
		t.Fatalf("Expected FLYING state, got %+v", status)
	}

	// End with a forced landing
	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"landingType":"FORCED"}`)
	EndFlightHandler(session, radar, testMetrics)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/end", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("End: expected 200, got %d", rec.Code)
	}
	resp = decodeResponse(t, rec)
	if resp.Message != "Flight recorded" {
		t.Fatalf("Unexpected end response: %+v", resp)
	}

	if len(recorder.tracks) != 1 {
		t.Fatalf("Expected one recorded track, got %d", len(recorder.tracks))
	}
	if recorder.tracks[0].LandingType != "FORCED" {
		t.Errorf("Expected FORCED landing, got %s", recorder.tracks[0].LandingType)
	}
}

func TestStartFlightDoubleTap(t *testing.T) {
	session, _, _ := newSessionFixture()
	handler := StartFlightHandler(session, testMetrics)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/start", nil))
	if decodeResponse(t, rec).Message != "Flight started" {
		t.Fatal("First start must begin the flight")
	}

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/start", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Double-tap must not error, got %d", rec.Code)
	}
	if decodeResponse(t, rec).Message != "Flight already in progress" {
		t.Error("Double-tap must be reported as a no-op")
	}
}

func TestEndFlightWithoutSession(t *testing.T) {
	session, radar, recorder := newSessionFixture()

	rec := httptest.NewRecorder()
	EndFlightHandler(session, radar, testMetrics)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/end", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if decodeResponse(t, rec).Message != "No flight in progress" {
		t.Error("Idle end must be reported as a no-op")
	}
	if len(recorder.tracks) != 0 {
		t.Errorf("No record may be written, got %d", len(recorder.tracks))
	}
}

func TestEndFlightEmptyBodyDefaultsToNormal(t *testing.T) {
	session, radar, recorder := newSessionFixture()

	rec := httptest.NewRecorder()
	StartFlightHandler(session, testMetrics)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/start", nil))

	rec = httptest.NewRecorder()
	EndFlightHandler(session, radar, testMetrics)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/end", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if len(recorder.tracks) != 1 || recorder.tracks[0].LandingType != "NORMAL" {
		t.Errorf("Empty body must default to a NORMAL landing, got %+v", recorder.tracks)
	}
}

func TestDiscardFlightOverHTTP(t *testing.T) {
	session, _, recorder := newSessionFixture()

	rec := httptest.NewRecorder()
	StartFlightHandler(session, testMetrics)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/start", nil))

	rec = httptest.NewRecorder()
	DiscardFlightHandler(session, testMetrics)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/discard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if decodeResponse(t, rec).Message != "Flight discarded" {
		t.Error("Expected a discard confirmation")
	}
	if len(recorder.tracks) != 0 {
		t.Errorf("Discard must not write a record, got %d", len(recorder.tracks))
	}

	rec = httptest.NewRecorder()
	DiscardFlightHandler(session, testMetrics)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flight/discard", nil))
	if decodeResponse(t, rec).Message != "No flight in progress" {
		t.Error("Second discard must be reported as a no-op")
	}
}
