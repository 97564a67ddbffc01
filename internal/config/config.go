// Package config loads and validates the TOML configuration file that
// tunes the alignment pipeline. All settings have working defaults;
// the file only needs to exist when overriding them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/alnah/go-subalign/internal/align"
	"github.com/alnah/go-subalign/internal/merge"
	"github.com/alnah/go-subalign/internal/sentence"
)

// Sentinel errors for configuration failures.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Split configures the sentence-splitting LLM calls.
type Split struct {
	Model          string `toml:"model"`
	Workers        int    `toml:"workers"`
	ChunkThreshold int    `toml:"chunk_threshold_words"`
	MaxRetries     int    `toml:"max_retries"`
}

// Align configures the fragment-to-sentence matcher.
type Align struct {
	AcceptRatio  float64 `toml:"accept_ratio"`
	MaxShift     int     `toml:"max_shift"`
	WideShift    int     `toml:"wide_shift"`
	MaxGapMillis float64 `toml:"max_gap_ms"`
	MaxWords     int     `toml:"max_words_per_line"`
}

// Optimize configures the micro-segment merge pass.
type Optimize struct {
	MaxGapMillis float64 `toml:"max_gap_ms"`
	MaxWords     int     `toml:"max_words"`
	MaxMerged    int     `toml:"max_merged_words"`
}

// Cache configures the persistent sentence cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration.
type Config struct {
	Split    Split    `toml:"split"`
	Align    Align    `toml:"align"`
	Optimize Optimize `toml:"optimize"`
	Cache    Cache    `toml:"cache"`
	Logging  Logging  `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Split: Split{
			Model:          sentence.DefaultModel,
			Workers:        merge.DefaultWorkers,
			ChunkThreshold: merge.DefaultChunkThreshold,
			MaxRetries:     3,
		},
		Align: Align{
			AcceptRatio:  align.DefaultThreshold,
			MaxShift:     align.DefaultMaxShift,
			WideShift:    align.DefaultWideShift,
			MaxGapMillis: align.DefaultMaxGap,
			MaxWords:     align.DefaultMaxWords,
		},
		Optimize: Optimize{
			MaxGapMillis: align.DefaultOptimizeGap,
			MaxWords:     align.DefaultOptimizeMaxWords,
			MaxMerged:    align.DefaultOptimizeMerged,
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCachePath(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// defaultCachePath places the cache under the user cache directory,
// falling back to the working directory when none is available.
func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "subalign-cache.db"
	}
	return filepath.Join(dir, "subalign", "sentences.db")
}

// DefaultPath returns the default config file location under the user
// config directory, falling back to the working directory when none
// is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "subalign.toml"
	}
	return filepath.Join(dir, "subalign", "config.toml")
}

// Load reads the TOML file at path on top of the defaults. A missing
// file is not an error; the defaults apply as-is. The returned bool
// reports whether a file was actually read.
func Load(path string) (Config, bool, error) {
	cfg := Default()

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return Config{}, false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, false, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, false, err
	}
	return cfg, true, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Split.Model == "" {
		return fmt.Errorf("%w: split.model must not be empty", ErrInvalidConfig)
	}
	if c.Split.Workers < 1 {
		return fmt.Errorf("%w: split.workers must be at least 1, got %d", ErrInvalidConfig, c.Split.Workers)
	}
	if c.Split.ChunkThreshold < 1 {
		return fmt.Errorf("%w: split.chunk_threshold_words must be at least 1, got %d", ErrInvalidConfig, c.Split.ChunkThreshold)
	}
	if c.Split.MaxRetries < 0 {
		return fmt.Errorf("%w: split.max_retries must not be negative, got %d", ErrInvalidConfig, c.Split.MaxRetries)
	}
	if c.Align.AcceptRatio <= 0 || c.Align.AcceptRatio > 1 {
		return fmt.Errorf("%w: align.accept_ratio must be in (0, 1], got %v", ErrInvalidConfig, c.Align.AcceptRatio)
	}
	if c.Align.MaxShift < 1 {
		return fmt.Errorf("%w: align.max_shift must be at least 1, got %d", ErrInvalidConfig, c.Align.MaxShift)
	}
	if c.Align.WideShift < c.Align.MaxShift {
		return fmt.Errorf("%w: align.wide_shift must be at least align.max_shift, got %d", ErrInvalidConfig, c.Align.WideShift)
	}
	if c.Align.MaxGapMillis <= 0 {
		return fmt.Errorf("%w: align.max_gap_ms must be positive, got %v", ErrInvalidConfig, c.Align.MaxGapMillis)
	}
	if c.Align.MaxWords < 1 {
		return fmt.Errorf("%w: align.max_words_per_line must be at least 1, got %d", ErrInvalidConfig, c.Align.MaxWords)
	}
	if c.Optimize.MaxGapMillis <= 0 {
		return fmt.Errorf("%w: optimize.max_gap_ms must be positive, got %v", ErrInvalidConfig, c.Optimize.MaxGapMillis)
	}
	if c.Optimize.MaxWords < 1 {
		return fmt.Errorf("%w: optimize.max_words must be at least 1, got %d", ErrInvalidConfig, c.Optimize.MaxWords)
	}
	if c.Optimize.MaxMerged < c.Optimize.MaxWords {
		return fmt.Errorf("%w: optimize.max_merged_words must be at least optimize.max_words, got %d", ErrInvalidConfig, c.Optimize.MaxMerged)
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("%w: cache.path must not be empty when the cache is enabled", ErrInvalidConfig)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn, or error, got %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be text or json, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
