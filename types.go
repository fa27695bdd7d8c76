package tracematcher

import (
	"errors"
	"time"

	"github.com/paulmach/orb"
)

// Fix is a single timestamped GPS observation. Fixes are owned by the
// caller; the pipeline only reorders and slices sequences of them.
type Fix struct {
	ID   string    `json:"id,omitempty"`
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
	Time time.Time `json:"time"`
}

// Point returns the fix position in lon/lat order, matching the
// coordinate order of GeoJSON and the road-matching APIs.
func (f Fix) Point() orb.Point {
	return orb.Point{f.Lon, f.Lat}
}

// Matching method identifiers, in descending order of fidelity.
const (
	MethodMatched = "matched" // road-aligned via the map-matching service
	MethodRouted  = "routed"  // point-to-point route through sampled waypoints
	MethodSimple  = "simple"  // straight segments between sampled fixes
)

// MatchResult is the outcome of one strategy attempt. For the map-matching
// strategy one MatchResult exists per batch before merging; the merged
// result spans every batch, with geometry concatenated in batch order and
// confidence averaged over the batches that reported one. Confidence is nil
// when the producing strategy cannot honestly report a score.
type MatchResult struct {
	Geometry        orb.LineString `json:"geometry"`
	Method          string         `json:"method"`
	Confidence      *float64       `json:"confidence,omitempty"`
	ProcessedPoints int            `json:"processedPoints"`
	OriginalPoints  int            `json:"originalPoints"`
	DistanceMeters  float64        `json:"distanceMeters,omitempty"`
	DurationSeconds float64        `json:"durationSeconds,omitempty"`
}

var (
	// ErrInsufficientFixes is returned when fewer than 2 fixes are
	// submitted. Nothing is sampled and no external call is issued.
	ErrInsufficientFixes = errors.New("at least 2 fixes are required to define a route")

	// ErrNoBatches is the terminal failure: splitting produced no usable
	// batch so even the simple fallback has nothing to join.
	ErrNoBatches = errors.New("no usable point batches after splitting")
)

func confidence(v float64) *float64 { return &v }
