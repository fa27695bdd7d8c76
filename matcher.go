package tracematcher

import (
	"context"
	"log"

	"github.com/theoremus-urban-solutions/trace-matcher/config"
)

// Matcher turns a raw fix sequence into one road-aligned route geometry.
// It drives an ordered cascade of strategies, from the highest-fidelity
// map matching down to a local straight-segment path, and stops at the
// first strategy that produces a result. Strategies are never retried;
// the only redundancy is falling through to a simpler rung.
//
// All state is request-scoped. A Matcher is safe for concurrent use.
type Matcher struct {
	limits     config.PipelineConfig
	strategies []strategy
}

// NewMatcher creates a matcher backed by the given route service.
// Zero-valued limits are replaced with the service's documented defaults.
func NewMatcher(svc RouteService, limits config.PipelineConfig) *Matcher {
	if limits.MaxTracePoints == 0 {
		limits.MaxTracePoints = config.DefaultMaxTracePoints
	}
	if limits.MaxRequestPoints == 0 {
		limits.MaxRequestPoints = config.DefaultMaxRequestPoints
	}
	if limits.MaxRouteWaypoints == 0 {
		limits.MaxRouteWaypoints = config.DefaultMaxRouteWaypoints
	}
	if limits.MaxSimplePoints == 0 {
		limits.MaxSimplePoints = config.DefaultMaxSimplePoints
	}
	return &Matcher{
		limits: limits,
		strategies: []strategy{
			&mapMatchingStrategy{svc: svc},
			&directionsStrategy{svc: svc, maxWaypoints: limits.MaxRouteWaypoints},
			&simpleStrategy{maxPoints: limits.MaxSimplePoints},
		},
	}
}

// Match produces one merged route geometry for the given fixes, plus the
// strategy that produced it, a confidence score where one can honestly be
// reported, and processed/original point counts.
//
// The caller bounds the whole request through ctx; when it expires,
// in-flight service calls are abandoned, their batches count as failed and
// the cascade continues with whatever the next strategy can still do.
func (m *Matcher) Match(ctx context.Context, fixes []Fix) (*MatchResult, error) {
	if len(fixes) < 2 {
		return nil, ErrInsufficientFixes
	}

	sorted := SortFixesByTime(fixes)
	sampled := SampleByInterval(sorted, m.limits.MaxTracePoints)
	batches := SplitIntoBatches(sampled, m.limits.MaxRequestPoints)
	if len(batches) == 0 {
		return nil, ErrNoBatches
	}
	if len(sampled) < len(sorted) {
		log.Printf("sampled %d fixes down to %d for matching", len(sorted), len(sampled))
	}

	for _, s := range m.strategies {
		result := s.run(ctx, sampled, batches)
		if result == nil {
			log.Printf("%s strategy produced no result, falling back", s.name())
			continue
		}
		result.OriginalPoints = len(fixes)
		if result.ProcessedPoints < len(sampled) {
			log.Printf("%s strategy covered %d of %d sampled fixes; uncovered fixes are dropped from the geometry",
				s.name(), result.ProcessedPoints, len(sampled))
		}
		return result, nil
	}
	return nil, ErrNoBatches
}
