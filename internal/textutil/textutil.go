// Package textutil provides script-aware word counting and text
// normalization for multilingual caption text.
//
// Word counting treats each character of an ideographic or
// non-space-delimited script (CJK, kana, hangul, Thai, ...) as one
// unit, and falls back to whitespace-separated tokens for everything
// else. This matches how subtitle line-length limits are usually
// expressed for mixed-language content.
package textutil

import (
	"strings"
	"unicode"
)

// Character-per-word scripts, in the order they are counted.
// Each table is consumed (matched runes are blanked) before the next
// one runs, so overlapping heuristics never double count.
var scriptTables = []*unicode.RangeTable{
	{R16: []unicode.Range16{{Lo: 0x4e00, Hi: 0x9fff, Stride: 1}}}, // CJK unified ideographs
	{R16: []unicode.Range16{{Lo: 0x3040, Hi: 0x309f, Stride: 1}}}, // hiragana
	{R16: []unicode.Range16{{Lo: 0x30a0, Hi: 0x30ff, Stride: 1}}}, // katakana
	{R16: []unicode.Range16{{Lo: 0xac00, Hi: 0xd7af, Stride: 1}}}, // hangul syllables
	{R16: []unicode.Range16{{Lo: 0x3130, Hi: 0x318f, Stride: 1}}}, // hangul compatibility jamo
	{R16: []unicode.Range16{{Lo: 0x0e00, Hi: 0x0e7f, Stride: 1}}}, // Thai
	{R16: []unicode.Range16{{Lo: 0x0600, Hi: 0x06ff, Stride: 1}}}, // Arabic
	{R16: []unicode.Range16{{Lo: 0x0400, Hi: 0x04ff, Stride: 1}}}, // Cyrillic
	{R16: []unicode.Range16{{Lo: 0x0590, Hi: 0x05ff, Stride: 1}}}, // Hebrew
	{R16: []unicode.Range16{{Lo: 0x1e00, Hi: 0x1eff, Stride: 1}}}, // Latin extended additional (Vietnamese)
}

// CountWords counts word units in mixed-language text.
// Characters of the scripts above count one each; the residual text is
// whitespace-split and each token counts as one word.
func CountWords(text string) int {
	if text == "" {
		return 0
	}

	runes := []rune(text)
	count := 0
	for _, table := range scriptTables {
		for i, r := range runes {
			if unicode.Is(table, r) {
				count++
				runes[i] = ' '
			}
		}
	}

	return count + len(strings.Fields(string(runes)))
}

// Normalize lowercases text and collapses runs of whitespace to a
// single space, trimming the ends. Used only for similarity
// comparison; original-case text is retained for output.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// IsPurePunctuation reports whether s contains no letter or digit,
// i.e. nothing a word counter or matcher could anchor on.
func IsPurePunctuation(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return false
		}
	}
	return true
}

// IsASCIIWord reports whether s (ignoring surrounding space) consists
// only of ASCII letters and apostrophes, i.e. a bare English word as
// emitted by word-level ASR output.
func IsASCIIWord(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '\'' {
			return false
		}
	}
	return true
}
