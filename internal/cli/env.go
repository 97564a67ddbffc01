package cli

import (
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-subalign/internal/config"
	"github.com/alnah/go-subalign/internal/sentence"
)

// EnvOpenAIAPIKey is the environment variable holding the OpenAI key.
const EnvOpenAIAPIKey = "OPENAI_API_KEY"

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in
// isolation. All fields have production defaults via DefaultEnv();
// tests override specific fields with the With* options.
//
// Env must not be nil when passed to command constructors.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Factories for domain objects
	ConfigLoader    ConfigLoader
	SplitterFactory SplitterFactory
	CacheOpener     CacheOpener
}

// ConfigLoader loads the application configuration.
type ConfigLoader interface {
	Load(path string) (config.Config, bool, error)
}

// SplitterFactory creates sentence splitters.
type SplitterFactory interface {
	NewSplitter(apiKey string, cfg config.Split) sentence.Splitter
}

// CacheOpener opens the persistent sentence cache.
type CacheOpener interface {
	Open(path string) (*sentence.Cache, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithSplitterFactory sets the splitter factory.
func WithSplitterFactory(f SplitterFactory) EnvOption {
	return func(e *Env) {
		e.SplitterFactory = f
	}
}

// WithCacheOpener sets the cache opener.
func WithCacheOpener(o CacheOpener) EnvOption {
	return func(e *Env) {
		e.CacheOpener = o
	}
}

// DefaultEnv creates an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		Getenv:          os.Getenv,
		ConfigLoader:    &defaultConfigLoader{},
		SplitterFactory: &defaultSplitterFactory{},
		CacheOpener:     &defaultCacheOpener{},
	}
}

// NewEnv creates an Env with defaults, applying any options.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

type defaultConfigLoader struct{}

func (defaultConfigLoader) Load(path string) (config.Config, bool, error) {
	return config.Load(path)
}

type defaultSplitterFactory struct{}

func (defaultSplitterFactory) NewSplitter(apiKey string, cfg config.Split) sentence.Splitter {
	return sentence.NewOpenAISplitter(openai.NewClient(apiKey),
		sentence.WithModel(cfg.Model),
		sentence.WithMaxRetries(cfg.MaxRetries))
}

type defaultCacheOpener struct{}

func (defaultCacheOpener) Open(path string) (*sentence.Cache, error) {
	return sentence.OpenCache(path)
}
