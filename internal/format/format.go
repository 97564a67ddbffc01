// Package format provides timestamp and duration formatting shared by
// the subtitle reader/writer and log output.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// SRTTimestamp formats a position in milliseconds as HH:MM:SS,mmm.
// Negative values are clamped to zero.
func SRTTimestamp(ms float64) string {
	if ms < 0 {
		ms = 0
	}
	total := int64(ms + 0.5)
	h := total / 3600000
	m := (total % 3600000) / 60000
	s := (total % 60000) / 1000
	frac := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, frac)
}

// srtTimestampRe accepts HH:MM:SS,mmm with either comma or dot as the
// millisecond separator (both appear in the wild).
var srtTimestampRe = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})[,.](\d{1,3})$`)

// ParseSRTTimestamp parses HH:MM:SS,mmm into milliseconds.
func ParseSRTTimestamp(s string) (float64, error) {
	matches := srtTimestampRe.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid SRT timestamp %q", s)
	}

	h, _ := strconv.Atoi(matches[1])
	m, _ := strconv.Atoi(matches[2])
	sec, _ := strconv.Atoi(matches[3])

	// Pad the fraction to milliseconds: "5" means 500ms, "45" means 450ms.
	frac := matches[4]
	for len(frac) < 3 {
		frac += "0"
	}
	ms, _ := strconv.Atoi(frac)

	return float64(h)*3600000 + float64(m)*60000 + float64(sec)*1000 + float64(ms), nil
}

// DurationHuman formats a duration for human display.
// Examples: "2h", "30m", "1h30m", "45s"
func DurationHuman(d time.Duration) string {
	if d >= time.Hour {
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes > 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm", d/time.Minute)
	}
	return fmt.Sprintf("%ds", d/time.Second)
}
