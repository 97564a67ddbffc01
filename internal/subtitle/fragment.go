// Package subtitle defines the timestamped fragment model and the SRT
// reader/writer used at the pipeline boundaries.
package subtitle

import (
	"sort"
	"strings"
)

// Fragment is one timestamped text unit from recognition output.
// Start and End are positions in milliseconds; End >= Start.
// Fragments are value types: merges produce fresh fragments rather
// than mutating constituents.
type Fragment struct {
	Text  string
	Start float64
	End   float64
}

// Duration returns the fragment length in milliseconds.
func (f Fragment) Duration() float64 {
	return f.End - f.Start
}

// Gap returns the silence between f and next in milliseconds.
// Negative values indicate overlap.
func (f Fragment) Gap(next Fragment) float64 {
	return next.Start - f.End
}

// Merge combines contiguous fragments into a single fragment spanning
// the first start and last end, with texts concatenated in order.
// Panics on empty input; callers always hold at least one fragment.
func Merge(frags []Fragment) Fragment {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return Fragment{
		Text:  b.String(),
		Start: frags[0].Start,
		End:   frags[len(frags)-1].End,
	}
}

// Text concatenates fragment texts in order, with no separator.
// Word-level ASR fragments carry their own trailing spaces, so the
// concatenation stays word-delimited for space-separated scripts.
func Text(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return b.String()
}

// SortByStart sorts fragments chronologically by start time, in place.
// The sort is stable so equal-start fragments keep their input order.
func SortByStart(frags []Fragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		return frags[i].Start < frags[j].Start
	})
}
