package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewRaw(&buf)
	l.Log(true, "data", []byte{0x30, 0x01, 0xAB})
	l.Log(false, "set_report", []byte{0x01})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "<< data")
	assert.True(t, strings.HasSuffix(lines[0], "  3 3001ab"))
	assert.Contains(t, lines[1], ">> set_report")
}

func TestRawLoggerNil(t *testing.T) {
	assert.NotPanics(t, func() { NewRaw(nil).Log(true, "data", []byte{1}) })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, ParseLevel("info"), ParseLevel(""))
	assert.Equal(t, ParseLevel("info"), ParseLevel("bogus"))
}

func TestColorHandlerKeepsAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &colorHandler{w: &buf, level: LevelTrace}
	logger := slog.New(h).With("slot", 1)
	logger.Info("attached", "handle", 7)

	assert.Contains(t, buf.String(), "attached slot=1 handle=7")
}

func TestSetupRawLogger(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "raw.log")
		raw, closers, err := SetupRawLogger("info", path)
		require.NoError(t, err)
		require.Len(t, closers, 1)
		raw.Log(true, "data", []byte{0x30})
		require.NoError(t, closers[0].Close())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "<< data")
	})
	t.Run("trace without file", func(t *testing.T) {
		raw, closers, err := SetupRawLogger("trace", "")
		require.NoError(t, err)
		assert.Empty(t, closers)
		assert.IsType(t, &rawLogger{}, raw)
	})
	t.Run("info without file", func(t *testing.T) {
		raw, _, err := SetupRawLogger("info", "")
		require.NoError(t, err)
		assert.Equal(t, nopRaw{}, raw)
	})
	t.Run("bad path", func(t *testing.T) {
		raw, closers, err := SetupRawLogger("info", filepath.Join(t.TempDir(), "missing", "raw.log"))
		assert.Error(t, err)
		assert.Empty(t, closers)
		assert.NotPanics(t, func() { raw.Log(true, "data", nil) })
	})
}
