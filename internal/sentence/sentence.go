// Package sentence provides the sentence-splitting collaborator: an
// LLM-backed service that turns flattened transcript text into an
// ordered list of sentences, optionally cached on disk. The aligner
// only relies on the ordering guarantee: concatenating the returned
// sentences approximately reconstructs the input text.
package sentence

import (
	"context"
	"regexp"
	"strings"
)

// Splitter splits flattened transcript text into ordered sentences.
type Splitter interface {
	// Split returns the sentences of text, in reading order.
	Split(ctx context.Context, text string) ([]string, error)
}

// listMarkerRe strips leading enumeration the model sometimes adds
// despite instructions: "1. ", "2) ", "- ", "* ".
var listMarkerRe = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*]\s+)`)

// ParseSentences extracts one sentence per non-empty line from a raw
// model response, removing list markers and code fences.
func ParseSentences(raw string) []string {
	var sentences []string
	for line := range strings.SplitSeq(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = listMarkerRe.ReplaceAllString(line, "")
		if line != "" {
			sentences = append(sentences, line)
		}
	}
	return sentences
}
