// Package align implements the sentence-to-fragment alignment engine:
// fuzzy windowed matching of externally produced sentences onto runs
// of timestamped fragments, gap-based grouping, length-bounded
// splitting, and a final micro-segment optimizer.
package align

// Ratio computes a Ratcliff/Obershelp similarity ratio in [0, 1]
// between two strings compared rune by rune: twice the number of
// matching runes over the total length. Identical strings score 1.0.
// Callers normalize case and whitespace first.
func Ratio(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 && len(br) == 0 {
		return 1.0
	}
	return 2 * float64(matchingRunes(ar, br)) / float64(len(ar)+len(br))
}

// span is a pair of half-open ranges still to be matched.
type span struct {
	alo, ahi, blo, bhi int
}

// matchingRunes returns the total length of the matching blocks found
// by recursively locating the longest common substring and matching
// the pieces to its left and right.
func matchingRunes(a, b []rune) int {
	total := 0
	stack := []span{{0, len(a), 0, len(b)}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j, size := longestMatch(a, b, s)
		if size == 0 {
			continue
		}
		total += size
		stack = append(stack,
			span{s.alo, i, s.blo, j},
			span{i + size, s.ahi, j + size, s.bhi},
		)
	}

	return total
}

// longestMatch finds the longest matching block of a[s.alo:s.ahi] and
// b[s.blo:s.bhi]. Earliest block wins ties, so results are
// deterministic for equal-length candidates.
func longestMatch(a, b []rune, s span) (besti, bestj, bestsize int) {
	// Index rune positions in b's range once per call.
	b2j := make(map[rune][]int, s.bhi-s.blo)
	for j := s.blo; j < s.bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj = s.alo, s.blo

	// j2len[j] = length of the match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := s.alo; i < s.ahi; i++ {
		newj2len := make(map[int]int, len(j2len))
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return besti, bestj, bestsize
}
