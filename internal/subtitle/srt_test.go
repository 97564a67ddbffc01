package subtitle_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-subalign/internal/subtitle"
)

// Notes:
// - Black-box testing via package subtitle_test.
// - Parsing tolerance cases (BOM, dot separator, position hints) match
//   real-world SRT output from common ASR tools.

const sampleSRT = `1
00:00:00,000 --> 00:00:01,830
I'm happy to
have you here today.

2
00:00:01,910 --> 00:00:03,610
As I'm sure you're all aware

`

func TestParseSRT(t *testing.T) {
	t.Parallel()

	frags, err := subtitle.ParseSRT(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}

	want := []subtitle.Fragment{
		{Text: "I'm happy to have you here today.", Start: 0, End: 1830},
		{Text: "As I'm sure you're all aware", Start: 1910, End: 3610},
	}

	if len(frags) != len(want) {
		t.Fatalf("got %d fragments, want %d", len(frags), len(want))
	}
	for i := range want {
		if frags[i] != want[i] {
			t.Errorf("fragment %d = %+v, want %+v", i, frags[i], want[i])
		}
	}
}

func TestParseSRTEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{"empty input", "", 0, false},
		{"bom and no trailing blank", "\ufeff1\n00:00:00,000 --> 00:00:01,000\nhello", 1, false},
		{"dot millisecond separator", "1\n00:00:00.500 --> 00:00:01.000\nhi\n", 1, false},
		{"position hints after end", "1\n00:00:00,000 --> 00:00:01,000 X1:0 X2:100\nhi\n", 1, false},
		{"missing cue index", "00:00:00,000 --> 00:00:01,000\nhi\n", 1, false},
		{"invalid timestamp", "1\nbogus --> 00:00:01,000\nhi\n", 0, true},
		{"end before start", "1\n00:00:02,000 --> 00:00:01,000\nhi\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frags, err := subtitle.ParseSRT(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d fragments", len(frags))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(frags) != tt.wantCount {
				t.Errorf("got %d fragments, want %d", len(frags), tt.wantCount)
			}
		})
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	t.Parallel()

	frags := []subtitle.Fragment{
		{Text: "first cue", Start: 0, End: 1830},
		{Text: "  ", Start: 1830, End: 1900}, // blank, skipped
		{Text: "second cue", Start: 1910, End: 3610},
	}

	var buf strings.Builder
	if err := subtitle.WriteSRT(&buf, frags); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "1\n00:00:00,000 --> 00:00:01,830\nfirst cue\n") {
		t.Errorf("missing first cue in output:\n%s", out)
	}
	if !strings.Contains(out, "2\n00:00:01,910 --> 00:00:03,610\nsecond cue\n") {
		t.Errorf("blank cue should not consume an index:\n%s", out)
	}

	parsed, err := subtitle.ParseSRT(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseSRT(round trip): %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("round trip got %d fragments, want 2", len(parsed))
	}
	if parsed[0].Text != "first cue" || parsed[1].Text != "second cue" {
		t.Errorf("round trip texts = %q, %q", parsed[0].Text, parsed[1].Text)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	frags := []subtitle.Fragment{
		{Text: "the ", Start: 100, End: 200},
		{Text: "quick ", Start: 200, End: 300},
		{Text: "fox", Start: 320, End: 400},
	}

	got := subtitle.Merge(frags)
	want := subtitle.Fragment{Text: "the quick fox", Start: 100, End: 400}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}

func TestSortByStart(t *testing.T) {
	t.Parallel()

	frags := []subtitle.Fragment{
		{Text: "c", Start: 300, End: 400},
		{Text: "a", Start: 0, End: 100},
		{Text: "b", Start: 100, End: 200},
	}
	subtitle.SortByStart(frags)

	want := "abc"
	var got strings.Builder
	for _, f := range frags {
		got.WriteString(f.Text)
	}
	if got.String() != want {
		t.Errorf("sorted order = %q, want %q", got.String(), want)
	}
}

func TestGapAndDuration(t *testing.T) {
	t.Parallel()

	a := subtitle.Fragment{Text: "a", Start: 100, End: 250}
	b := subtitle.Fragment{Text: "b", Start: 400, End: 500}

	if got := a.Duration(); got != 150 {
		t.Errorf("Duration = %v, want 150", got)
	}
	if got := a.Gap(b); got != 150 {
		t.Errorf("Gap = %v, want 150", got)
	}
	if got := b.Gap(a); got != -400 {
		t.Errorf("overlap Gap = %v, want -400", got)
	}
}
