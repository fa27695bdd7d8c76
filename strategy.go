package tracematcher

import (
	"context"
	"log"
	"sync"

	"github.com/theoremus-urban-solutions/trace-matcher/utils"
)

// routedConfidence is reported for directions-based results: the geometry
// is road-aligned but not verified against the raw trace.
const routedConfidence = 0.9

// strategy is one rung of the fallback cascade. run returns nil when the
// strategy produced no usable result, which advances the cascade.
type strategy interface {
	name() string
	run(ctx context.Context, sampled []Fix, batches [][]Fix) *MatchResult
}

// mapMatchingStrategy submits every batch to the map-matching service
// concurrently and merges whatever subset succeeded. One failed batch never
// aborts its siblings; the attempt fails only if every batch does.
type mapMatchingStrategy struct {
	svc RouteService
}

func (s *mapMatchingStrategy) name() string { return "map matching" }

func (s *mapMatchingStrategy) run(ctx context.Context, sampled []Fix, batches [][]Fix) *MatchResult {
	// One result slot per batch; slots are written by exactly one
	// goroutine each, so no locking is needed.
	results := make([]*TraceMatch, len(batches))

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(i int, batch []Fix) {
			defer wg.Done()
			match, err := s.svc.MatchTrace(ctx, batch)
			if err != nil {
				log.Printf("map matching: batch %d/%d (%d points) failed: %v", i+1, len(batches), len(batch), err)
				return
			}
			results[i] = match
		}(i, batch)
	}
	wg.Wait()

	return mergeTraceMatches(results)
}

// directionsStrategy requests one optimized route through the sampled
// sequence, reduced to the waypoint count the directions service accepts.
// It works on the whole pre-batch sequence, not per batch.
type directionsStrategy struct {
	svc          RouteService
	maxWaypoints int
}

func (s *directionsStrategy) name() string { return "directions" }

func (s *directionsStrategy) run(ctx context.Context, sampled []Fix, _ [][]Fix) *MatchResult {
	waypoints := SampleByStride(sampled, s.maxWaypoints)
	route, err := s.svc.RouteWaypoints(ctx, waypoints)
	if err != nil {
		log.Printf("directions: routing %d waypoints failed: %v", len(waypoints), err)
		return nil
	}
	if len(route.Geometry) == 0 {
		return nil
	}
	return &MatchResult{
		Geometry:        route.Geometry,
		Method:          MethodRouted,
		Confidence:      confidence(routedConfidence),
		ProcessedPoints: len(waypoints),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
	}
}

// simpleStrategy joins the sampled fixes as a straight-segment path. It
// never calls the external service and is the guaranteed terminal rung.
// No confidence is reported: the path is not GPS-verified and a score
// would overstate trust.
type simpleStrategy struct {
	maxPoints int
}

func (s *simpleStrategy) name() string { return "simple" }

func (s *simpleStrategy) run(_ context.Context, sampled []Fix, _ [][]Fix) *MatchResult {
	points := SampleByStride(sampled, s.maxPoints)
	if len(points) < 2 {
		return nil
	}
	result := &MatchResult{
		Method:          MethodSimple,
		ProcessedPoints: len(points),
	}
	for _, f := range points {
		result.Geometry = append(result.Geometry, f.Point())
	}
	result.DistanceMeters = utils.PathLengthMeters(result.Geometry)
	result.DurationSeconds = points[len(points)-1].Time.Sub(points[0].Time).Seconds()
	return result
}
