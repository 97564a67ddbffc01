// Package merge orchestrates the full re-segmentation pipeline:
// preprocess fragments, chunk them, extract sentences per chunk in
// parallel through the sentence-splitting collaborator, align the
// sentences onto the original fragments, then sort and optimize the
// result.
package merge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-subalign/internal/align"
	"github.com/alnah/go-subalign/internal/sentence"
	"github.com/alnah/go-subalign/internal/subtitle"
	"github.com/alnah/go-subalign/internal/textutil"
)

// Default orchestration parameters.
const (
	// DefaultChunkThreshold is the target word count per chunk sent
	// to the sentence splitter.
	DefaultChunkThreshold = 1000

	// DefaultWorkers is the fixed worker-pool size for concurrent
	// splitter calls.
	DefaultWorkers = 4
)

// Merger drives the pipeline. Construct with NewMerger.
type Merger struct {
	splitter       sentence.Splitter
	aligner        *align.Aligner
	chunkThreshold int
	workers        int
	optimizeGap    float64
	optimizeWords  int
	optimizeMerged int
	logger         *slog.Logger
}

// Option configures a Merger.
type Option func(*Merger)

// WithAligner replaces the default Aligner.
func WithAligner(a *align.Aligner) Option {
	return func(m *Merger) {
		if a != nil {
			m.aligner = a
		}
	}
}

// WithChunkThreshold sets the target word count per chunk.
func WithChunkThreshold(words int) Option {
	return func(m *Merger) {
		if words > 0 {
			m.chunkThreshold = words
		}
	}
}

// WithWorkers sets the worker-pool size for splitter calls.
func WithWorkers(n int) Option {
	return func(m *Merger) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithOptimizer sets the micro-segment optimizer thresholds.
func WithOptimizer(maxGapMillis float64, maxWords, maxMerged int) Option {
	return func(m *Merger) {
		if maxGapMillis > 0 {
			m.optimizeGap = maxGapMillis
		}
		if maxWords > 0 {
			m.optimizeWords = maxWords
		}
		if maxMerged > 0 {
			m.optimizeMerged = maxMerged
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMerger creates a Merger using splitter for sentence extraction.
func NewMerger(splitter sentence.Splitter, opts ...Option) *Merger {
	m := &Merger{
		splitter:       splitter,
		chunkThreshold: DefaultChunkThreshold,
		workers:        DefaultWorkers,
		optimizeGap:    align.DefaultOptimizeGap,
		optimizeWords:  align.DefaultOptimizeMaxWords,
		optimizeMerged: align.DefaultOptimizeMerged,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.aligner == nil {
		m.aligner = align.NewAligner(align.WithLogger(m.logger))
	}
	return m
}

// Merge re-segments frags into sentence-aligned subtitles.
// Degenerate input (no fragments, or no countable words) is returned
// unchanged. A failure in any chunk's splitter call fails the whole
// merge: silently dropping one chunk's sentences would desynchronize
// the alignment of every later chunk.
func (m *Merger) Merge(ctx context.Context, frags []subtitle.Fragment) ([]subtitle.Fragment, error) {
	pre := preprocess(frags)
	totalWords := textutil.CountWords(subtitle.Text(pre))
	if len(pre) == 0 || totalWords == 0 {
		m.logger.Info("nothing to align", "fragments", len(frags))
		return frags, nil
	}

	numChunks := chunkCount(totalWords, m.chunkThreshold)
	chunks := align.ChunkByWords(pre, numChunks)
	m.logger.Info("extracting sentences",
		"words", totalWords,
		"chunks", len(chunks),
		"workers", m.workers)

	sentences, err := m.splitAll(ctx, chunks)
	if err != nil {
		return nil, err
	}
	m.logger.Info("sentences extracted", "sentences", len(sentences))

	merged := m.aligner.Align(pre, sentences)
	subtitle.SortByStart(merged)

	optimized := align.Optimize(merged, m.optimizeGap, m.optimizeWords, m.optimizeMerged)
	m.logger.Info("alignment complete",
		"input_fragments", len(frags),
		"output_fragments", len(optimized))
	return optimized, nil
}

// splitAll dispatches one splitter call per chunk over a fixed-size
// worker pool. Each result lands in its chunk's slot, so flattening
// preserves chunk order regardless of completion order.
func (m *Merger) splitAll(ctx context.Context, chunks [][]subtitle.Fragment) ([]string, error) {
	results := make([][]string, len(chunks))
	sem := make(chan struct{}, m.workers)

	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				return err
			}

			sentences, err := m.splitter.Split(ctx, flatten(chunk))
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			m.logger.Debug("chunk split", "chunk", i, "sentences", len(sentences))
			results[i] = sentences
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var flat []string
	for _, r := range results {
		flat = append(flat, r...)
	}
	return flat, nil
}

// preprocess drops fragments the matcher cannot anchor on and
// regularizes bare ASCII words: lowercased with a trailing space, so
// concatenated word-level fragments stay space-delimited for both
// word counting and similarity comparison.
func preprocess(frags []subtitle.Fragment) []subtitle.Fragment {
	out := make([]subtitle.Fragment, 0, len(frags))
	for _, f := range frags {
		if textutil.IsPurePunctuation(f.Text) {
			continue
		}
		if textutil.IsASCIIWord(f.Text) {
			f.Text = strings.ToLower(strings.TrimSpace(f.Text)) + " "
		}
		out = append(out, f)
	}
	return out
}

// flatten joins a chunk's fragment texts into the single line of text
// sent to the sentence splitter.
func flatten(frags []subtitle.Fragment) string {
	return strings.ReplaceAll(subtitle.Text(frags), "\n", " ")
}

// chunkCount returns ceil(words/threshold), minimum 1.
func chunkCount(words, threshold int) int {
	if threshold <= 0 {
		return 1
	}
	n := (words + threshold - 1) / threshold
	if n < 1 {
		return 1
	}
	return n
}
