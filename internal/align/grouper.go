package align

import "github.com/alnah/go-subalign/internal/subtitle"

// GroupByGap partitions an ordered fragment run into contiguous
// sub-runs, starting a new one wherever the silence between a
// fragment and its predecessor exceeds maxGap milliseconds.
// Every input fragment lands in exactly one group, in order.
func GroupByGap(frags []subtitle.Fragment, maxGap float64) [][]subtitle.Fragment {
	if len(frags) == 0 {
		return nil
	}

	var groups [][]subtitle.Fragment
	start := 0
	for i := 1; i < len(frags); i++ {
		if frags[i-1].Gap(frags[i]) > maxGap {
			groups = append(groups, frags[start:i])
			start = i
		}
	}
	return append(groups, frags[start:])
}
