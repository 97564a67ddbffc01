package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alnah/go-subalign/internal/logging"
)

func TestNewTextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hello", "key", "value")
	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("hello", "key", "value")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "hello" || record["key"] != "value" {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestNewLevelFiltersBelow(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record not filtered at warn level: %q", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := logging.New(logging.Options{Level: "loud", Output: &buf}); err == nil {
		t.Error("unknown level accepted")
	}
	if _, err := logging.New(logging.Options{Format: "xml", Output: &buf}); err == nil {
		t.Error("unknown format accepted")
	}
	if _, err := logging.New(logging.Options{}); err == nil {
		t.Error("nil output accepted")
	}
}
