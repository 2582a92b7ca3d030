package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerWithWriter(slog.LevelInfo, "json", &buf).Info("hello", "task_id", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json output not parseable: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "hello" || rec["task_id"] != float64(3) {
		t.Errorf("record = %v", rec)
	}

	buf.Reset()
	l := NewLoggerWithWriter(slog.LevelWarn, "text", &buf)
	l.Info("dropped")
	l.Warn("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("level filtering wrong: %q", buf.String())
	}
}
