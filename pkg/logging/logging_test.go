package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":     zapcore.DebugLevel,
		"INFO":      zapcore.InfoLevel,
		" warning ": zapcore.WarnLevel,
		"warn":      zapcore.WarnLevel,
		"Error":     zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWritesLeveledLines(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("Data saved", zap.String("path", "output/line_data.csv"))
	log.Warn("No data to save")
	log.Error("File not found")
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "\tINFO\tData saved")
	assert.Contains(t, lines[0], `"path": "output/line_data.csv"`)
	assert.Contains(t, lines[1], "\tWARNING\tNo data to save")
	assert.Contains(t, lines[2], "\tERROR\tFile not found")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("verbose", nil)
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
