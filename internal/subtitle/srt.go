package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-subalign/internal/format"
)

// ParseSRT reads SRT content into a chronologically ordered fragment
// sequence. Multi-line cues are joined with a single space. Cue index
// numbers are ignored; ordering follows file order.
func ParseSRT(r io.Reader) ([]Fragment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var frags []Fragment
	var cur *Fragment
	var text []string
	lineNum := 0

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = strings.Join(text, " ")
		frags = append(frags, *cur)
		cur = nil
		text = nil
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		switch {
		case line == "":
			flush()
		case strings.Contains(line, "-->"):
			flush()
			start, end, err := parseTimingLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			cur = &Fragment{Start: start, End: end}
		case cur == nil:
			// Cue index (or stray text before any timing line); skip.
			continue
		default:
			text = append(text, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitles: %w", err)
	}

	return frags, nil
}

// parseTimingLine parses "HH:MM:SS,mmm --> HH:MM:SS,mmm".
func parseTimingLine(line string) (start, end float64, err error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}

	start, err = format.ParseSRTTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}

	// Some tools append position hints after the end timestamp.
	endField := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endField) == 0 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	end, err = format.ParseSRTTimestamp(endField[0])
	if err != nil {
		return 0, 0, err
	}

	if end < start {
		return 0, 0, fmt.Errorf("cue ends before it starts: %q", line)
	}

	return start, end, nil
}

// WriteSRT serializes fragments as SRT, numbering cues from 1.
// Fragment texts are trimmed; empty fragments are skipped.
func WriteSRT(w io.Writer, frags []Fragment) error {
	bw := bufio.NewWriter(w)
	index := 1

	for _, f := range frags {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		if _, err := bw.WriteString(strconv.Itoa(index) + "\n"); err != nil {
			return fmt.Errorf("failed to write subtitles: %w", err)
		}
		line := format.SRTTimestamp(f.Start) + " --> " + format.SRTTimestamp(f.End) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("failed to write subtitles: %w", err)
		}
		if _, err := bw.WriteString(text + "\n\n"); err != nil {
			return fmt.Errorf("failed to write subtitles: %w", err)
		}
		index++
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}
	return nil
}
