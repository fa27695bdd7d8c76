package tracematcher

import (
	"math"
	"sort"
	"time"
)

// SortFixesByTime returns the fixes stably sorted by ascending timestamp.
// The input slice is not modified. Duplicate timestamps keep their
// relative order.
func SortFixesByTime(fixes []Fix) []Fix {
	sorted := make([]Fix, len(fixes))
	copy(sorted, fixes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}

// SampleByInterval reduces a time-sorted fix sequence to at most max fixes
// by emitting a fix whenever its timestamp has advanced at least
// span/(max-1) past the last emitted fix. The first and last fixes are
// always kept. Sequences already within the limit are returned unchanged.
//
// Walking time rather than index keeps the output temporally uniform:
// index thinning would over-represent stretches where the recorder logged
// densely (stopped at a light, poor reception bursts).
func SampleByInterval(fixes []Fix, max int) []Fix {
	if len(fixes) <= max || max < 2 {
		return fixes
	}

	span := fixes[len(fixes)-1].Time.Sub(fixes[0].Time)
	if span <= 0 {
		// All fixes share one timestamp; fall back to index striding.
		return SampleByStride(fixes, max)
	}
	step := span / time.Duration(max-1)

	sampled := make([]Fix, 0, max)
	sampled = append(sampled, fixes[0])
	lastEmitted := fixes[0].Time
	for _, f := range fixes[1 : len(fixes)-1] {
		// One slot stays reserved for the final fix.
		if len(sampled) == max-1 {
			break
		}
		if f.Time.Sub(lastEmitted) >= step {
			sampled = append(sampled, f)
			lastEmitted = f.Time
		}
	}
	return append(sampled, fixes[len(fixes)-1])
}

// SampleByStride reduces a fix sequence to exactly min(len, max) fixes by
// picking evenly spaced source indices. Index 0 and len-1 are always kept;
// intermediate slot i maps to round(i*(len-1)/(max-1)). Deterministic and
// independent of timestamps, for reductions where only the count matters.
func SampleByStride(fixes []Fix, max int) []Fix {
	if len(fixes) <= max || max < 2 {
		return fixes
	}

	sampled := make([]Fix, 0, max)
	for i := 0; i < max; i++ {
		src := int(math.Round(float64(i) * float64(len(fixes)-1) / float64(max-1)))
		sampled = append(sampled, fixes[src])
	}
	return sampled
}
