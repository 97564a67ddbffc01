package sentence

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists split results keyed by (model, input text) so
// re-runs over the same transcript skip the LLM round trip.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS split_cache (
	key        TEXT PRIMARY KEY,
	model      TEXT NOT NULL,
	sentences  TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// OpenCache opens (creating if needed) the SQLite cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, ErrCacheUnavailable)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache %s: %v: %w", path, err, ErrCacheUnavailable)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// cacheKey derives a stable key from the model and input text.
func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached sentences for (model, text), if present.
func (c *Cache) Get(ctx context.Context, model, text string) ([]string, bool, error) {
	var encoded string
	err := c.db.QueryRowContext(ctx,
		`SELECT sentences FROM split_cache WHERE key = ?`,
		cacheKey(model, text)).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache: %w", err)
	}

	var sentences []string
	if err := json.Unmarshal([]byte(encoded), &sentences); err != nil {
		// A corrupt row behaves like a miss; it will be overwritten.
		return nil, false, nil
	}
	return sentences, true, nil
}

// Put stores sentences for (model, text), replacing any existing entry.
func (c *Cache) Put(ctx context.Context, model, text string, sentences []string) error {
	encoded, err := json.Marshal(sentences)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO split_cache (key, model, sentences, created_at) VALUES (?, ?, ?, ?)`,
		cacheKey(model, text), model, string(encoded), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Compile-time interface compliance check.
var _ Splitter = (*CachedSplitter)(nil)

// CachedSplitter wraps a Splitter with a persistent result cache.
// Cache failures degrade to calling the inner splitter; they never
// fail the split itself.
type CachedSplitter struct {
	inner  Splitter
	cache  *Cache
	model  string
	logger *slog.Logger
}

// NewCachedSplitter wraps inner with cache. model keys the entries;
// pass the same identifier the inner splitter sends to the API.
func NewCachedSplitter(inner Splitter, cache *Cache, model string, logger *slog.Logger) *CachedSplitter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachedSplitter{inner: inner, cache: cache, model: model, logger: logger}
}

// Split returns cached sentences when available, delegating to the
// inner splitter (and populating the cache) otherwise.
func (s *CachedSplitter) Split(ctx context.Context, text string) ([]string, error) {
	if sentences, ok, err := s.cache.Get(ctx, s.model, text); err != nil {
		s.logger.Warn("sentence cache read failed", "error", err)
	} else if ok {
		s.logger.Debug("sentence cache hit", "sentences", len(sentences))
		return sentences, nil
	}

	sentences, err := s.inner.Split(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, s.model, text, sentences); err != nil {
		s.logger.Warn("sentence cache write failed", "error", err)
	}
	return sentences, nil
}
