package formatter

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
)

func sampleResult(confidence *float64) *tracematcher.MatchResult {
	return &tracematcher.MatchResult{
		Geometry: orb.LineString{
			{10.750, 59.910},
			{10.751, 59.911},
		},
		Method:          tracematcher.MethodMatched,
		Confidence:      confidence,
		ProcessedPoints: 2,
		OriginalPoints:  5,
		DistanceMeters:  130.4,
		DurationSeconds: 12.0,
	}
}

func ptr(v float64) *float64 { return &v }

func TestBuildGeoJSON(t *testing.T) {
	body, err := BuildGeoJSON(sampleResult(ptr(0.85)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		t.Fatalf("output is not a valid FeatureCollection: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}

	feature := fc.Features[0]
	ls, ok := feature.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("expected LineString geometry, got %T", feature.Geometry)
	}
	if len(ls) != 2 {
		t.Errorf("expected 2 vertices, got %d", len(ls))
	}

	if got := feature.Properties.MustString("method"); got != "matched" {
		t.Errorf("expected method %q, got %q", "matched", got)
	}
	if got := feature.Properties.MustFloat64("confidence"); got != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", got)
	}
	if got := feature.Properties.MustFloat64("processedPoints"); got != 2 {
		t.Errorf("expected processedPoints 2, got %v", got)
	}
	if got := feature.Properties.MustFloat64("originalPoints"); got != 5 {
		t.Errorf("expected originalPoints 5, got %v", got)
	}
	if got := feature.Properties.MustString("generatedAt", ""); got == "" {
		t.Error("expected generatedAt timestamp")
	}
}

func TestBuildGeoJSONOmitsMissingConfidence(t *testing.T) {
	body, err := BuildGeoJSON(sampleResult(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		t.Fatalf("output is not a valid FeatureCollection: %v", err)
	}
	if _, present := fc.Features[0].Properties["confidence"]; present {
		t.Error("expected confidence property to be omitted")
	}
}

func TestBuildJSON(t *testing.T) {
	body := BuildJSON(sampleResult(nil))

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["method"] != "matched" {
		t.Errorf("expected method %q, got %v", "matched", decoded["method"])
	}
	if _, present := decoded["confidence"]; present {
		t.Error("expected nil confidence to be omitted")
	}
}
