package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := ParseLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, slog.LevelInfo, got)
}

func TestConfigureJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure(Options{Level: "warn", Format: "json", Output: &buf}))
	t.Cleanup(func() { _ = Configure(Options{}) })

	Info("dropped")
	Warn("kept", "user_id", "abc")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "abc", entry["user_id"])
}

func TestConfigureInvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	err := Configure(Options{Level: "loud", Output: &buf})
	t.Cleanup(func() { _ = Configure(Options{}) })

	assert.Error(t, err)
	Info("still logged")
	assert.Contains(t, buf.String(), "still logged")
}
