package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adrtools/internal/config"
	"adrtools/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg, "run-1")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("normalized script")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "adrtools.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "normalized script") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")

	content := readFile(t, logPath)
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")

	content := readFile(t, logPath)
	if !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleSubjectFromContext(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "subject.log")
	base, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatal(err)
	}
	ctx := logging.WithFile(logging.WithWorker(context.Background(), 2), "/scripts/show_ep1.tsv")
	logger := logging.WithContext(ctx, logging.NewComponentLogger(base, "batch"))
	logger.Info("file complete", logging.Int("cues", 12))

	content := readFile(t, logPath)
	if !strings.Contains(content, "INFO [batch] Worker 2 · show_ep1.tsv - file complete") {
		t.Fatalf("unexpected header: %q", content)
	}
	if !strings.Contains(content, "    - cues: 12") {
		t.Fatalf("expected field line, got %q", content)
	}
}

func TestJSONLoggerCarriesRunID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.json")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}, RunID: "abc-123"})
	if err != nil {
		t.Fatal(err)
	}
	logger.With("extra", "value").Info("started")

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readFile(t, logPath))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record[logging.FieldRunID] != "abc-123" || record["extra"] != "value" || record["level"] != "info" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestErrorWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "errors.json")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatal(err)
	}
	logging.ErrorWithContext(logger, "file failed", "row_parse", logging.Error(errors.New("boom")))
	logging.WarnWithContext(logger, "speakers unresolved", "unresolved_speakers", logging.String(logging.FieldErrorHint, "extend the registry"))

	lines := strings.Split(strings.TrimSpace(readFile(t, logPath)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d", len(lines))
	}
	var first, second map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if first[logging.FieldEventType] != "row_parse" || first[logging.FieldErrorHint] == "" || first["error"] != "boom" {
		t.Fatalf("unexpected error record %v", first)
	}
	if second[logging.FieldErrorHint] != "extend the registry" || second[logging.FieldImpact] == nil {
		t.Fatalf("unexpected warn record %v", second)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.ErrorWithContext(nil, "ignored", "none")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}
