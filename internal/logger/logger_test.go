package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: WarnLevel, Console: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestConsole_Mute(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)
	log, err := New(Config{Level: InfoLevel, Console: console})
	require.NoError(t, err)

	restore := console.Mute()
	log.Warn("while muted")
	nested := console.Mute()
	nested()
	log.Warn("still muted")
	restore()
	log.Warn("after restore")
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "muted")
	assert.Contains(t, out, "after restore")
}

func TestNew_FileCoreWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tunedeck.log")
	log, err := New(Config{Level: DebugLevel, File: path, Console: &bytes.Buffer{}, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("overlay written")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.True(t, strings.HasPrefix(line, "{"), "file output should be JSON: %q", line)
	assert.Contains(t, line, `"msg":"overlay written"`)
}
