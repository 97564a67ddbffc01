package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-subalign/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subalign.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	if err := config.Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, loaded, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded {
		t.Error("loaded = true for missing file")
	}
	if cfg != config.Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[split]
model = "gpt-4o"
workers = 2

[align]
max_words_per_line = 10

[logging]
level = "debug"
format = "json"
`)

	cfg, loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded {
		t.Error("loaded = false for existing file")
	}
	if cfg.Split.Model != "gpt-4o" || cfg.Split.Workers != 2 {
		t.Errorf("split = %+v", cfg.Split)
	}
	if cfg.Align.MaxWords != 10 {
		t.Errorf("align.max_words_per_line = %d, want 10", cfg.Align.MaxWords)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	// Untouched sections keep their defaults.
	if cfg.Split.ChunkThreshold != config.Default().Split.ChunkThreshold {
		t.Errorf("chunk threshold = %d, want default", cfg.Split.ChunkThreshold)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "[split\nmodel = ")
	if _, _, err := config.Load(path); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty model", func(c *config.Config) { c.Split.Model = "" }},
		{"zero workers", func(c *config.Config) { c.Split.Workers = 0 }},
		{"zero chunk threshold", func(c *config.Config) { c.Split.ChunkThreshold = 0 }},
		{"negative retries", func(c *config.Config) { c.Split.MaxRetries = -1 }},
		{"ratio above one", func(c *config.Config) { c.Align.AcceptRatio = 1.5 }},
		{"zero ratio", func(c *config.Config) { c.Align.AcceptRatio = 0 }},
		{"wide shift below max shift", func(c *config.Config) { c.Align.WideShift = c.Align.MaxShift - 1 }},
		{"negative align gap", func(c *config.Config) { c.Align.MaxGapMillis = -1 }},
		{"zero max words", func(c *config.Config) { c.Align.MaxWords = 0 }},
		{"merged cap below word cap", func(c *config.Config) { c.Optimize.MaxMerged = c.Optimize.MaxWords - 1 }},
		{"cache enabled without path", func(c *config.Config) { c.Cache.Enabled = true; c.Cache.Path = "" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
