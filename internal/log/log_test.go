package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &textHandler{
		level: slog.LevelInfo,
		w:     &buf,
		now:   func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
	l := slog.New(h).With("shape", 2).WithGroup("arc")
	l.Debug("hidden")
	l.Warn("radii grown", "scale", 3.5, "note", "too small")

	assert.Equal(t, "2024-05-01T12:00:00Z WRN radii grown shape=2 arc.scale=3.5 arc.note=\"too small\"\n", buf.String())
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn := New(Options{Level: "warn", Format: "json"}, &buf)
	defer closeFn()

	l.Info("dropped")
	l.Error("failed", "shape", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &m))
	assert.Equal(t, "failed", m["msg"])
	assert.Equal(t, "ERROR", m["level"])
	assert.EqualValues(t, 1, m["shape"])
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flatten.log")
	var buf bytes.Buffer
	l, closeFn := New(Options{Level: "debug", File: path}, &buf)
	l.Debug("flattened", "points", 42)
	require.NoError(t, closeFn())

	assert.Contains(t, buf.String(), "DBG flattened points=42")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &m))
	assert.Equal(t, "flattened", m["msg"])
	assert.EqualValues(t, 42, m["points"])
}
