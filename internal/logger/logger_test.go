package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"err", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestTagFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", DisabledTags: []string{"surface"}}, &buf)
	defer Init(NewConfig(), nil)

	DebugTagf("history", "pushed %d", 1)
	DebugTagf("surface", "stroke drawn")

	out := buf.String()
	assert.Contains(t, out, "pushed 1")
	assert.Contains(t, out, "tag=history")
	assert.NotContains(t, out, "stroke drawn")
}

func TestEnabledTagsDropUntagged(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", EnabledTags: []string{"mirror"}}, &buf)
	defer Init(NewConfig(), nil)

	Infof("untagged")
	InfoTagf("mirror", "peer joined")
	DebugTagf("mirror", "below level")

	out := buf.String()
	assert.NotContains(t, out, "untagged")
	assert.Contains(t, out, "peer joined")
	assert.NotContains(t, out, "below level")
}
