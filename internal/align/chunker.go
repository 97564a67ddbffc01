package align

import (
	"sort"

	"github.com/alnah/go-subalign/internal/subtitle"
	"github.com/alnah/go-subalign/internal/textutil"
)

// splitSearchRange is how far (in fragments) around a word-count
// target the chunker looks for the largest time gap to cut at.
const splitSearchRange = 30

// ChunkByWords splits a fragment sequence into numChunks contiguous
// chunks of roughly equal word count, snapping each boundary to the
// largest nearby time gap so chunks break at natural pauses.
// The chunks partition the input exactly: every fragment appears in
// one chunk, in order.
func ChunkByWords(frags []subtitle.Fragment, numChunks int) [][]subtitle.Fragment {
	if numChunks <= 1 || len(frags) <= numChunks {
		return [][]subtitle.Fragment{frags}
	}

	n := len(frags)

	// Cumulative word counts locate the fragment nearest each
	// evenly spaced word-count target.
	cum := make([]int, n)
	total := 0
	for i, f := range frags {
		total += textutil.CountWords(f.Text)
		cum[i] = total
	}
	wordsPerChunk := total / numChunks

	var targets []int
	idx := 0
	for c := 1; c < numChunks; c++ {
		targetWords := c * wordsPerChunk
		for idx < n && cum[idx] < targetWords {
			idx++
		}
		if idx >= n-1 {
			break
		}
		targets = append(targets, idx)
	}

	// Snap each target to the largest gap within the search window.
	// Scanning left to right with a strict comparison keeps ties on
	// the first occurrence.
	seen := make(map[int]bool, len(targets))
	var splits []int
	for _, target := range targets {
		lo := max(0, target-splitSearchRange)
		hi := min(n-2, target+splitSearchRange)

		best := lo
		bestGap := frags[lo].Gap(frags[lo+1])
		for j := lo + 1; j <= hi; j++ {
			if gap := frags[j].Gap(frags[j+1]); gap > bestGap {
				best, bestGap = j, gap
			}
		}
		if !seen[best] {
			seen[best] = true
			splits = append(splits, best)
		}
	}
	sort.Ints(splits)

	chunks := make([][]subtitle.Fragment, 0, len(splits)+1)
	prev := 0
	for _, s := range splits {
		chunks = append(chunks, frags[prev:s+1])
		prev = s + 1
	}
	if prev < n {
		chunks = append(chunks, frags[prev:])
	}
	return chunks
}
