package align_test

import (
	"math"
	"testing"

	"github.com/alnah/go-subalign/internal/align"
)

func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1.0},
		{"identical", "hello world", "hello world", 1.0},
		{"one empty", "", "abc", 0.0},
		{"disjoint", "abc", "xyz", 0.0},
		// Longest block "bcd" (3 runes), nothing else matches:
		// 2*3 / (4+4) = 0.75.
		{"overlapping", "abcd", "bcde", 0.75},
		// "ab" matches, "cd"/"dc" contributes one more rune:
		// blocks "ab"+"c" or "ab"+"d" = 3; 2*3/8 = 0.75.
		{"transposition", "abcd", "abdc", 0.75},
		{"unicode runes", "你好世界", "你好世界", 1.0},
		{"unicode partial", "你好", "你坏", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := align.Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetricBounds(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"the quick brown fox", "the quick brown"},
		{"a", "aaaa"},
		{"hello", "yellow"},
	}

	for _, p := range pairs {
		ab := align.Ratio(p[0], p[1])
		ba := align.Ratio(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Ratio not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Ratio(%q, %q) = %v out of [0,1]", p[0], p[1], ab)
		}
	}
}
