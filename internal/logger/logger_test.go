package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
	assert.Equal(t, "ldmark", lines[0]["service"])
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Output: &buf}).Component("store").Info().Msg("attached")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "store", lines[0]["component"])
}

func TestLogRequest(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf})

	log.LogRequest("GET", "/v1/types", 200, 3*time.Millisecond)
	log.LogRequest("GET", "/v1/types", 500, time.Millisecond)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "/v1/types", lines[0]["route"])
	assert.EqualValues(t, 200, lines[0]["status"])
	assert.Equal(t, "error", lines[1]["level"])
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Pretty: true, Output: &buf}).Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Component("x").LogServerShutdown()
	})
}
