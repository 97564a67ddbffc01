package align

import (
	"log/slog"
	"sort"

	"github.com/alnah/go-subalign/internal/subtitle"
	"github.com/alnah/go-subalign/internal/textutil"
)

// Default alignment parameters.
const (
	// DefaultThreshold is the minimum similarity ratio for accepting
	// a fragment window as the match for a sentence.
	DefaultThreshold = 0.5

	// DefaultMaxShift is how many fragments past the cursor the
	// window start may slide.
	DefaultMaxShift = 30

	// DefaultWideShift replaces DefaultMaxShift for the sentence
	// after a failed match, giving the search room to resynchronize.
	DefaultWideShift = 100

	// DefaultMaxGap is the largest silence (ms) allowed inside one
	// merged subtitle line.
	DefaultMaxGap = 1500.0

	// DefaultMaxWords is the word limit per final subtitle line.
	DefaultMaxWords = 16
)

// Aligner matches target sentences onto contiguous fragment windows
// and merges each accepted window into sentence-aligned fragments.
type Aligner struct {
	threshold float64
	maxShift  int
	wideShift int
	maxGap    float64
	maxWords  int
	logger    *slog.Logger
}

// AlignerOption configures an Aligner.
type AlignerOption func(*Aligner)

// WithThreshold sets the similarity acceptance threshold.
func WithThreshold(ratio float64) AlignerOption {
	return func(a *Aligner) {
		if ratio > 0 {
			a.threshold = ratio
		}
	}
}

// WithShift sets the search-window slack: normal is used after a hit,
// wide after a miss.
func WithShift(normal, wide int) AlignerOption {
	return func(a *Aligner) {
		if normal > 0 {
			a.maxShift = normal
		}
		if wide > 0 {
			a.wideShift = wide
		}
	}
}

// WithMaxGap sets the largest silence (ms) merged into one line.
func WithMaxGap(ms float64) AlignerOption {
	return func(a *Aligner) {
		if ms > 0 {
			a.maxGap = ms
		}
	}
}

// WithMaxWords sets the word limit per final subtitle line.
func WithMaxWords(n int) AlignerOption {
	return func(a *Aligner) {
		if n > 0 {
			a.maxWords = n
		}
	}
}

// WithLogger sets the logger for match diagnostics.
func WithLogger(logger *slog.Logger) AlignerOption {
	return func(a *Aligner) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAligner creates an Aligner with the default parameters.
func NewAligner(opts ...AlignerOption) *Aligner {
	a := &Aligner{
		threshold: DefaultThreshold,
		maxShift:  DefaultMaxShift,
		wideShift: DefaultWideShift,
		maxGap:    DefaultMaxGap,
		maxWords:  DefaultMaxWords,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Align maps each sentence, in order, onto its best-matching
// contiguous fragment window and emits the merged result. Alignment
// state is an explicit fold over (cursor, shift): the cursor marks
// the first unconsumed fragment, and shift widens after a miss so the
// next sentence can recover from a desynchronized cursor.
//
// An accepted window is split at silences over maxGap, and any merged
// line over maxWords is recursively split at its best gap point.
// A sentence whose best ratio stays under the threshold is logged and
// skipped; the cursor still advances past the examined span so one
// bad sentence cannot stall the rest of the alignment.
//
// Output order follows sentence order, which is not necessarily
// chronological; callers sort afterward.
func (a *Aligner) Align(frags []subtitle.Fragment, sentences []string) []subtitle.Fragment {
	out := make([]subtitle.Fragment, 0, len(sentences))
	n := len(frags)
	cursor := 0
	shift := a.maxShift

	for _, sent := range sentences {
		norm := textutil.Normalize(sent)
		words := textutil.CountWords(norm)

		bestRatio := 0.0
		bestPos := -1
		bestWin := 0

		// Candidate window sizes from w/2 to 2w, closest to w first:
		// a window whose length is plausible for the sentence is more
		// likely to be the right one, and checking it early lets the
		// exact-match short-circuit fire sooner.
		minWin := max(1, words/2)
		maxWin := min(2*words, n-cursor)
		sizes := make([]int, 0, max(0, maxWin-minWin+1))
		for size := minWin; size <= maxWin; size++ {
			sizes = append(sizes, size)
		}
		sort.SliceStable(sizes, func(i, j int) bool {
			return abs(sizes[i]-words) < abs(sizes[j]-words)
		})

	search:
		for _, win := range sizes {
			maxStart := min(cursor+shift, n-win)
			for start := cursor; start <= maxStart; start++ {
				cand := textutil.Normalize(subtitle.Text(frags[start : start+win]))
				ratio := Ratio(norm, cand)
				if ratio > bestRatio {
					bestRatio, bestPos, bestWin = ratio, start, win
				}
				if ratio == 1.0 {
					break search
				}
			}
		}

		if bestRatio >= a.threshold && bestPos >= 0 {
			window := frags[bestPos : bestPos+bestWin]
			for _, group := range GroupByGap(window, a.maxGap) {
				merged := subtitle.Merge(group)
				if textutil.CountWords(merged.Text) > a.maxWords {
					out = append(out, SplitLong(merged.Text, group, a.maxWords)...)
				} else {
					out = append(out, merged)
				}
			}
			cursor = bestPos + bestWin
			shift = a.maxShift
			continue
		}

		a.logger.Warn("no fragment window matched sentence",
			"sentence", sent,
			"best_ratio", bestRatio,
			"cursor", cursor)
		shift = a.wideShift
		// Advance past the best candidate's span so one unmatched
		// sentence cannot stall the alignment. With no candidate at
		// all the cursor stays; the widened shift handles recovery.
		if bestPos >= 0 {
			cursor = bestPos + bestWin
		}
	}

	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
