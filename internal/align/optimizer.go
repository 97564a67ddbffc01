package align

import (
	"math"

	"github.com/alnah/go-subalign/internal/subtitle"
	"github.com/alnah/go-subalign/internal/textutil"
)

// Default optimizer thresholds.
const (
	// DefaultOptimizeGap is the largest silence (ms) across which a
	// trailing micro-fragment may be folded into its predecessor.
	DefaultOptimizeGap = 300.0

	// DefaultOptimizeMaxWords bounds (exclusively) the word count of
	// a fragment eligible for folding.
	DefaultOptimizeMaxWords = 5

	// DefaultOptimizeMerged caps the word count of a folded result.
	DefaultOptimizeMerged = 12
)

// Optimize folds very short fragments into their predecessor when
// they are nearly adjacent in time and the merge stays readable.
// The scan runs end to start so chains of consecutive micro-fragments
// collapse without index bookkeeping: removing fragment i never moves
// the not-yet-visited fragments before it.
func Optimize(frags []subtitle.Fragment, maxGap float64, maxWords, maxMerged int) []subtitle.Fragment {
	out := append([]subtitle.Fragment(nil), frags...)

	for i := len(out) - 1; i >= 1; i-- {
		cur := out[i]
		prev := out[i-1]

		gap := math.Abs(cur.Start - prev.End)
		curWords := textutil.CountWords(cur.Text)
		if gap >= maxGap || curWords >= maxWords {
			continue
		}
		if curWords+textutil.CountWords(prev.Text) > maxMerged {
			continue
		}

		out[i-1] = subtitle.Fragment{
			Text:  prev.Text + cur.Text,
			Start: math.Min(prev.Start, cur.Start),
			End:   math.Max(prev.End, cur.End),
		}
		out = append(out[:i], out[i+1:]...)
	}

	return out
}
