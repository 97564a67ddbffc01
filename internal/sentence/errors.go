package sentence

import "errors"

// Sentence-splitting sentinel errors.
var (
	// ErrNoSentences indicates the model response contained no usable
	// sentences. Retrying won't help; the input text is the problem.
	ErrNoSentences = errors.New("no sentences in model response")

	// ErrCacheUnavailable indicates the sentence cache could not be
	// opened or initialized.
	ErrCacheUnavailable = errors.New("sentence cache unavailable")
)
