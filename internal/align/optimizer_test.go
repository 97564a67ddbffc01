package align_test

import (
	"testing"

	"github.com/alnah/go-subalign/internal/align"
	"github.com/alnah/go-subalign/internal/subtitle"
)

func optimize(frags []subtitle.Fragment) []subtitle.Fragment {
	return align.Optimize(frags,
		align.DefaultOptimizeGap,
		align.DefaultOptimizeMaxWords,
		align.DefaultOptimizeMerged)
}

func TestOptimizeMergeChain(t *testing.T) {
	t.Parallel()

	// Three consecutive tiny fragments with sub-300ms gaps and a
	// total under the merged cap must collapse into one fragment
	// spanning first start to last end.
	frags := []subtitle.Fragment{
		{Text: "so ", Start: 0, End: 200},
		{Text: "anyway ", Start: 300, End: 500},
		{Text: "yeah", Start: 600, End: 800},
	}

	got := optimize(frags)
	if len(got) != 1 {
		t.Fatalf("got %d fragments (%+v), want 1", len(got), got)
	}
	want := subtitle.Fragment{Text: "so anyway yeah", Start: 0, End: 800}
	if got[0] != want {
		t.Errorf("merged = %+v, want %+v", got[0], want)
	}
}

func TestOptimizeRespectsThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		frags []subtitle.Fragment
		want  int
	}{
		{
			name: "gap too large",
			frags: []subtitle.Fragment{
				{Text: "one ", Start: 0, End: 200},
				{Text: "two", Start: 600, End: 800}, // 400ms gap
			},
			want: 2,
		},
		{
			name: "current fragment too long",
			frags: []subtitle.Fragment{
				{Text: "short ", Start: 0, End: 200},
				{Text: "five whole words right here", Start: 300, End: 800},
			},
			want: 2,
		},
		{
			name: "merged total over cap",
			frags: []subtitle.Fragment{
				{Text: "one two three four five six seven eight nine ten ", Start: 0, End: 200},
				{Text: "eleven twelve thirteen", Start: 300, End: 800}, // 10 + 3 = 13 > 12
			},
			want: 2,
		},
		{
			name: "merged total exactly at cap",
			frags: []subtitle.Fragment{
				{Text: "one two three four five six seven eight ", Start: 0, End: 200},
				{Text: "nine ten eleven twelve", Start: 300, End: 800}, // 8 + 4 = 12
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := optimize(tt.frags)
			if len(got) != tt.want {
				t.Errorf("got %d fragments (%+v), want %d", len(got), got, tt.want)
			}
		})
	}
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	frags := []subtitle.Fragment{
		{Text: "a ", Start: 0, End: 100},
		{Text: "b", Start: 150, End: 250},
	}
	orig := append([]subtitle.Fragment(nil), frags...)

	_ = optimize(frags)
	for i := range orig {
		if frags[i] != orig[i] {
			t.Errorf("input fragment %d mutated: %+v", i, frags[i])
		}
	}
}

func TestOptimizeEmptyAndSingle(t *testing.T) {
	t.Parallel()

	if got := optimize(nil); len(got) != 0 {
		t.Errorf("empty input: got %+v", got)
	}
	one := []subtitle.Fragment{{Text: "only", Start: 0, End: 100}}
	if got := optimize(one); len(got) != 1 || got[0] != one[0] {
		t.Errorf("single input: got %+v", got)
	}
}
