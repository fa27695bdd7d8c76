package tracematcher

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestMatchConfidence(t *testing.T) {
	tests := []struct {
		name string
		m    TraceMatch
		want float64
	}{
		{"all points placed", TraceMatch{MatchedPoints: 100, SubmittedPoints: 100}, 1.0},
		{"four of five", TraceMatch{MatchedPoints: 4, SubmittedPoints: 5}, 0.8},
		{"none placed", TraceMatch{MatchedPoints: 0, SubmittedPoints: 50}, 0.0},
		{"zero submitted", TraceMatch{}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchConfidence(&tt.m)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMergeTraceMatches(t *testing.T) {
	segA := orb.LineString{{10.0, 59.0}, {10.1, 59.1}}
	segB := orb.LineString{{10.2, 59.2}, {10.3, 59.3}}

	t.Run("all batches succeed", func(t *testing.T) {
		merged := mergeTraceMatches([]*TraceMatch{
			{Geometry: segA, MatchedPoints: 100, SubmittedPoints: 100, DistanceMeters: 1200, DurationSeconds: 60},
			{Geometry: segB, MatchedPoints: 30, SubmittedPoints: 50, DistanceMeters: 800, DurationSeconds: 40},
		})
		if merged == nil {
			t.Fatal("expected merged result")
		}
		if merged.Method != MethodMatched {
			t.Errorf("expected method %q, got %q", MethodMatched, merged.Method)
		}
		if len(merged.Geometry) != 4 {
			t.Fatalf("expected 4 vertices, got %d", len(merged.Geometry))
		}
		// Batch order preserved, no seam dedup.
		if merged.Geometry[0] != segA[0] || merged.Geometry[2] != segB[0] {
			t.Errorf("geometry not concatenated in batch order")
		}
		if merged.Confidence == nil || math.Abs(*merged.Confidence-0.8) > 1e-9 {
			t.Errorf("expected mean confidence 0.8, got %v", merged.Confidence)
		}
		if merged.ProcessedPoints != 150 {
			t.Errorf("expected 150 processed points, got %d", merged.ProcessedPoints)
		}
		if merged.DistanceMeters != 2000 || merged.DurationSeconds != 100 {
			t.Errorf("annotations not summed: %v m, %v s", merged.DistanceMeters, merged.DurationSeconds)
		}
	})

	t.Run("failed batch omitted from mean and geometry", func(t *testing.T) {
		merged := mergeTraceMatches([]*TraceMatch{
			{Geometry: segA, MatchedPoints: 80, SubmittedPoints: 100},
			nil,
		})
		if merged == nil {
			t.Fatal("expected merged result")
		}
		if len(merged.Geometry) != len(segA) {
			t.Errorf("expected only batch 1 vertices, got %d", len(merged.Geometry))
		}
		// nil entries are not zeros in the mean.
		if merged.Confidence == nil || math.Abs(*merged.Confidence-0.8) > 1e-9 {
			t.Errorf("expected confidence 0.8, got %v", merged.Confidence)
		}
		if merged.ProcessedPoints != 100 {
			t.Errorf("expected 100 processed points, got %d", merged.ProcessedPoints)
		}
	})

	t.Run("no batch succeeded", func(t *testing.T) {
		if merged := mergeTraceMatches([]*TraceMatch{nil, nil}); merged != nil {
			t.Errorf("expected nil, got %+v", merged)
		}
	})

	t.Run("empty geometry counts as failure", func(t *testing.T) {
		if merged := mergeTraceMatches([]*TraceMatch{{SubmittedPoints: 10}}); merged != nil {
			t.Errorf("expected nil for geometry-less match, got %+v", merged)
		}
	})
}
