package tracematcher

import (
	"context"

	"github.com/paulmach/orb"
)

// RouteService is the boundary to the external road services. The matcher
// only depends on this interface so tests can substitute fakes and so no
// strategy is tied to one vendor's wire format.
type RouteService interface {
	// MatchTrace snaps one ordered batch of fixes onto the road network.
	// An error means the batch contributed nothing to the current attempt.
	MatchTrace(ctx context.Context, fixes []Fix) (*TraceMatch, error)

	// RouteWaypoints requests one point-to-point route through the given
	// ordered waypoints.
	RouteWaypoints(ctx context.Context, fixes []Fix) (*Route, error)
}

// TraceMatch is a successful map-matching answer for one batch, including
// the per-point diagnostics the confidence estimate is derived from.
type TraceMatch struct {
	Geometry        orb.LineString
	MatchedPoints   int // points the service could confidently place
	SubmittedPoints int
	DistanceMeters  float64
	DurationSeconds float64
}

// Route is a successful directions answer through ordered waypoints.
type Route struct {
	Geometry        orb.LineString
	DistanceMeters  float64
	DurationSeconds float64
}
