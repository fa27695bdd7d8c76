package tracematcher

// matchConfidence scores one successful batch from the service's per-point
// diagnostics: the fraction of submitted points it could confidently place.
func matchConfidence(m *TraceMatch) float64 {
	if m.SubmittedPoints == 0 {
		return 0
	}
	return float64(m.MatchedPoints) / float64(m.SubmittedPoints)
}

// mergeTraceMatches concatenates per-batch match geometries in batch order
// into one result. Failed batches appear as nil entries and are skipped;
// their fixes are absent from the merged geometry. Vertices are not
// deduplicated at batch seams; batches are matched independently, so a
// tiny discontinuity at the boundary is inherent.
//
// The aggregate confidence is the arithmetic mean over the batches that
// contributed; nil entries count toward neither numerator nor denominator.
// Returns nil when no batch succeeded.
func mergeTraceMatches(perBatch []*TraceMatch) *MatchResult {
	merged := &MatchResult{Method: MethodMatched}

	var confidenceSum float64
	var contributing int
	for _, m := range perBatch {
		if m == nil {
			continue
		}
		merged.Geometry = append(merged.Geometry, m.Geometry...)
		merged.ProcessedPoints += m.SubmittedPoints
		merged.DistanceMeters += m.DistanceMeters
		merged.DurationSeconds += m.DurationSeconds
		confidenceSum += matchConfidence(m)
		contributing++
	}
	if contributing == 0 || len(merged.Geometry) == 0 {
		return nil
	}
	merged.Confidence = confidence(confidenceSum / float64(contributing))
	return merged
}
