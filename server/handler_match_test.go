package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
	"github.com/theoremus-urban-solutions/trace-matcher/config"
)

type fakeRouteService struct {
	matchErr error
}

func (f *fakeRouteService) MatchTrace(ctx context.Context, fixes []tracematcher.Fix) (*tracematcher.TraceMatch, error) {
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	geometry := make(orb.LineString, 0, len(fixes))
	for _, fx := range fixes {
		geometry = append(geometry, fx.Point())
	}
	return &tracematcher.TraceMatch{
		Geometry:        geometry,
		MatchedPoints:   len(fixes),
		SubmittedPoints: len(fixes),
		DistanceMeters:  250.0,
		DurationSeconds: 30.0,
	}, nil
}

func (f *fakeRouteService) RouteWaypoints(ctx context.Context, fixes []tracematcher.Fix) (*tracematcher.Route, error) {
	return nil, errors.New("routing unavailable")
}

func newTestServer(svc tracematcher.RouteService) *Server {
	matcher := tracematcher.NewMatcher(svc, config.PipelineConfig{})
	return New(matcher, config.AppConfig{})
}

const validBody = `{"fixes":[
	{"id":"a","lat":59.910,"lon":10.750,"time":"2024-05-01T08:00:00Z"},
	{"id":"b","lat":59.911,"lon":10.751,"time":"2024-05-01T08:00:05Z"},
	{"id":"c","lat":59.912,"lon":10.752,"time":"2024-05-01T08:00:10Z"}
]}`

func TestHandleMatch(t *testing.T) {
	s := newTestServer(&fakeRouteService{})

	req := httptest.NewRequest(http.MethodPost, "/api/match", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	s.handleMatch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var result tracematcher.MatchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Method != tracematcher.MethodMatched {
		t.Errorf("expected method %q, got %q", tracematcher.MethodMatched, result.Method)
	}
	if result.Confidence == nil || *result.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", result.Confidence)
	}
	if result.OriginalPoints != 3 {
		t.Errorf("expected originalPoints 3, got %d", result.OriginalPoints)
	}
}

func TestHandleMatchGeoJSON(t *testing.T) {
	s := newTestServer(&fakeRouteService{})

	req := httptest.NewRequest(http.MethodPost, "/api/match?format=geojson", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	s.handleMatch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("expected application/geo+json, got %q", ct)
	}
	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("body is not a FeatureCollection: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Errorf("expected 1 feature, got %d", len(fc.Features))
	}
}

func TestHandleMatchRejections(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{
			name:   "wrong method",
			method: http.MethodGet,
			body:   "",
			status: http.StatusMethodNotAllowed,
		},
		{
			name:   "malformed JSON",
			method: http.MethodPost,
			body:   "{not json",
			status: http.StatusBadRequest,
		},
		{
			name:   "too few fixes",
			method: http.MethodPost,
			body:   `{"fixes":[{"id":"a","lat":59.91,"lon":10.75,"time":"2024-05-01T08:00:00Z"}]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "latitude out of range",
			method: http.MethodPost,
			body: `{"fixes":[
				{"id":"a","lat":95.0,"lon":10.75,"time":"2024-05-01T08:00:00Z"},
				{"id":"b","lat":59.91,"lon":10.75,"time":"2024-05-01T08:00:05Z"}
			]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing timestamp",
			method: http.MethodPost,
			body: `{"fixes":[
				{"id":"a","lat":59.91,"lon":10.75},
				{"id":"b","lat":59.92,"lon":10.76,"time":"2024-05-01T08:00:05Z"}
			]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "non-RFC3339 timestamp",
			method: http.MethodPost,
			body: `{"fixes":[
				{"id":"a","lat":59.91,"lon":10.75,"time":"yesterday"},
				{"id":"b","lat":59.92,"lon":10.76,"time":"2024-05-01T08:00:05Z"}
			]}`,
			status: http.StatusBadRequest,
		},
	}

	s := newTestServer(&fakeRouteService{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/match", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.handleMatch(rec, req)
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Errorf("expected JSON error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestHandleMatchServiceDownFallsBack(t *testing.T) {
	// Matching and routing both fail; the simple fallback still answers.
	s := newTestServer(&fakeRouteService{matchErr: errors.New("service down")})

	req := httptest.NewRequest(http.MethodPost, "/api/match", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	s.handleMatch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result tracematcher.MatchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Method != tracematcher.MethodSimple {
		t.Errorf("expected method %q, got %q", tracematcher.MethodSimple, result.Method)
	}
	if result.Confidence != nil {
		t.Errorf("expected no confidence, got %v", *result.Confidence)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeRouteService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
}
