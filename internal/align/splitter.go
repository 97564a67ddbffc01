package align

import (
	"math"
	"strings"

	"github.com/alnah/go-subalign/internal/subtitle"
	"github.com/alnah/go-subalign/internal/textutil"
)

// gapEpsilon is the tolerance for treating inter-fragment gaps as
// equal. Uniform gaps carry no split information, so the splitter
// falls back to the midpoint; exact float comparison would misreport
// uniform timing as varied.
const gapEpsilon = 1e-6

// SplitLong recursively splits an over-long merged line back into
// shorter fragments, cutting where the underlying timing shows the
// largest silence. text is the concatenation of frags' texts; frags
// must be non-empty and contiguous.
//
// The split index is chosen from the middle two thirds of the run so
// a pathological gap right at an edge cannot produce a one-word line.
// The index is clamped to n-2 so both partitions are non-empty (the
// uniform-gap midpoint would otherwise be n-1 for a two-fragment run);
// each recursion therefore strictly shrinks the fragment count and
// terminates at the single-fragment base case.
func SplitLong(text string, frags []subtitle.Fragment, maxWords int) []subtitle.Fragment {
	if textutil.CountWords(text) <= maxWords || len(frags) <= 1 {
		return []subtitle.Fragment{{
			Text:  strings.TrimSpace(text),
			Start: frags[0].Start,
			End:   frags[len(frags)-1].End,
		}}
	}

	n := len(frags)
	gaps := make([]float64, n-1)
	allEqual := true
	for i := range gaps {
		gaps[i] = frags[i].Gap(frags[i+1])
		if math.Abs(gaps[i]-gaps[0]) >= gapEpsilon {
			allEqual = false
		}
	}

	splitIndex := min(n/2, n-2)
	if !allEqual {
		// Largest gap within [n/6, 5n/6); first occurrence wins ties.
		lo, hi := n/6, 5*n/6
		if lo < hi {
			best := lo
			for i := lo + 1; i < hi; i++ {
				if gaps[i] > gaps[best] {
					best = i
				}
			}
			splitIndex = best
		}
	}

	first := frags[:splitIndex+1]
	second := frags[splitIndex+1:]

	out := SplitLong(subtitle.Text(first), first, maxWords)
	return append(out, SplitLong(subtitle.Text(second), second, maxWords)...)
}
