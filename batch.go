package tracematcher

// SplitIntoBatches partitions a fix sequence into consecutive windows of at
// most maxPoints fixes, the largest request the matching service accepts.
// A trailing window with fewer than 2 fixes cannot define a path segment
// and is dropped rather than merged backward; losing at most one
// nearly-empty remainder is cheaper than corrupting batch boundaries.
func SplitIntoBatches(fixes []Fix, maxPoints int) [][]Fix {
	if maxPoints < 2 {
		return nil
	}

	var batches [][]Fix
	for start := 0; start < len(fixes); start += maxPoints {
		end := start + maxPoints
		if end > len(fixes) {
			end = len(fixes)
		}
		if end-start < 2 {
			break
		}
		batches = append(batches, fixes[start:end])
	}
	return batches
}
