package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-subalign/internal/align"
	"github.com/alnah/go-subalign/internal/config"
	"github.com/alnah/go-subalign/internal/logging"
	"github.com/alnah/go-subalign/internal/merge"
	"github.com/alnah/go-subalign/internal/sentence"
	"github.com/alnah/go-subalign/internal/subtitle"
)

// deriveOutputPath converts an input subtitle path to the default
// output path. Example: "talk.srt" -> "talk.aligned.srt"
func deriveOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".aligned" + ext
}

// mergeFlags carries the merge command's flag values into runMerge.
type mergeFlags struct {
	output     string
	configPath string
	model      string
	workers    int
	maxWords   int
	cachePath  string
	noCache    bool
	force      bool
	logLevel   string
	logFormat  string
}

// MergeCmd creates the merge command.
// The env parameter provides injectable dependencies for testing.
func MergeCmd(env *Env) *cobra.Command {
	var flags mergeFlags

	cmd := &cobra.Command{
		Use:   "merge <subtitle-file>",
		Short: "Re-segment a word-level SRT file along sentence boundaries",
		Long: `Re-segment a word-level SRT file along sentence boundaries.

The subtitle text is sent to an LLM that splits it into complete
sentences, then each sentence is matched back onto the original
timestamped fragments by fuzzy alignment. Long sentences are split at
silences, and stray micro-segments are merged into their neighbors.

Results are cached per model, so re-running over the same transcript
skips the API round trips.`,
		Example: `  subalign merge talk.srt
  subalign merge talk.srt -o talk.sentences.srt
  subalign merge talk.srt --model gpt-4o --max-words 12
  subalign merge talk.srt --no-cache --log-level debug`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, env, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: <input>.aligned.srt)")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Config file path")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "Chat model for sentence splitting")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Max concurrent API requests")
	cmd.Flags().IntVar(&flags.maxWords, "max-words", 0, "Maximum words per subtitle line")
	cmd.Flags().StringVar(&flags.cachePath, "cache-path", "", "Sentence cache database path")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Disable the sentence cache")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite the output file if it exists")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format: text, json")

	return cmd
}

// runMerge executes the alignment pipeline.
// Validation order: file exists -> format -> config -> output -> API key
func runMerge(cmd *cobra.Command, env *Env, inputPath string, flags mergeFlags) error {
	ctx := cmd.Context()

	// === VALIDATION (fail-fast) ===

	// 1. File exists
	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return fmt.Errorf("cannot access input file: %w", err)
	}

	// 2. Format supported
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".srt" {
		return fmt.Errorf("unsupported format %q (supported: srt): %w", ext, ErrUnsupportedFormat)
	}

	// 3. Config, with flag overrides on top
	configPath := flags.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, _, err := env.ConfigLoader.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("model") {
		cfg.Split.Model = flags.model
	}
	if cmd.Flags().Changed("workers") {
		cfg.Split.Workers = flags.workers
	}
	if cmd.Flags().Changed("max-words") {
		cfg.Align.MaxWords = flags.maxWords
	}
	if cmd.Flags().Changed("cache-path") {
		cfg.Cache.Path = flags.cachePath
	}
	if flags.noCache {
		cfg.Cache.Enabled = false
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 4. Output path
	output := flags.output
	if output == "" {
		output = deriveOutputPath(inputPath)
	}
	if _, err := os.Stat(output); err == nil && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, output)
	}

	// 5. API key present
	apiKey := env.Getenv(EnvOpenAIAPIKey)
	if apiKey == "" {
		return fmt.Errorf("%w (set it with: export %s=sk-...)", ErrAPIKeyMissing, EnvOpenAIAPIKey)
	}

	// === SETUP ===

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: env.Stderr,
	})
	if err != nil {
		return err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer input.Close()

	frags, err := subtitle.ParseSRT(input)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputPath, err)
	}
	fmt.Fprintf(env.Stderr, "Loaded %d fragments from %s\n", len(frags), inputPath)

	splitter := env.SplitterFactory.NewSplitter(apiKey, cfg.Split)
	if cfg.Cache.Enabled {
		// A broken cache degrades to uncached splitting.
		cache, err := env.CacheOpener.Open(cfg.Cache.Path)
		if err != nil {
			logger.Warn("sentence cache unavailable", "path", cfg.Cache.Path, "error", err)
		} else {
			defer cache.Close()
			splitter = sentence.NewCachedSplitter(splitter, cache, cfg.Split.Model, logger)
		}
	}

	aligner := align.NewAligner(
		align.WithThreshold(cfg.Align.AcceptRatio),
		align.WithShift(cfg.Align.MaxShift, cfg.Align.WideShift),
		align.WithMaxGap(cfg.Align.MaxGapMillis),
		align.WithMaxWords(cfg.Align.MaxWords),
		align.WithLogger(logger),
	)
	merger := merge.NewMerger(splitter,
		merge.WithAligner(aligner),
		merge.WithChunkThreshold(cfg.Split.ChunkThreshold),
		merge.WithWorkers(cfg.Split.Workers),
		merge.WithOptimizer(cfg.Optimize.MaxGapMillis, cfg.Optimize.MaxWords, cfg.Optimize.MaxMerged),
		merge.WithLogger(logger),
	)

	// === ALIGNMENT ===

	fmt.Fprintln(env.Stderr, "Aligning...")
	merged, err := merger.Merge(ctx, frags)
	if err != nil {
		return err
	}

	// === OUTPUT ===

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := subtitle.WriteSRT(out, merged); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	fmt.Fprintf(env.Stderr, "Wrote %d subtitles to %s\n", len(merged), output)
	return nil
}
