package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"trace":   TRACE,
		"Debug":   DEBUG,
		"":        INFO,
		" INFO ":  INFO,
		"warning": WARN,
		"ERROR":   ERROR,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("tools", &buf, WARN)

	l.Info("hidden")
	l.Warn("volume %d rejected", 3)
	assert.Equal(t, "[WARN] [tools] volume 3 rejected\n", buf.String())

	buf.Reset()
	l.SetLevel(TRACE)
	l.Trace("click")
	assert.Equal(t, "[TRACE] [tools] click\n", buf.String())
	assert.Equal(t, "tools", l.Component())
	assert.NoError(t, l.Close())
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Error("nothing") })
}

func TestNewLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	SetLogDir(dir)
	defer SetLogDir("logs")

	l, err := NewLogger("build")
	require.NoError(t, err)
	l.SetLevel(ERROR)
	l.Debug("rasterize %d tris", 12)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	files, err := filepath.Glob(filepath.Join(dir, "build_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] [build] rasterize 12 tris")
}

func TestManagerLevels(t *testing.T) {
	lm := &LoggerManager{loggers: make(map[string]*Logger)}

	a, err := lm.GetLogger("editor")
	require.NoError(t, err)
	b, err := lm.GetLogger("editor")
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = lm.GetLogger("storage")
	require.NoError(t, err)
	assert.Equal(t, []string{"editor", "storage"}, lm.ListComponents())

	lm.setConsoleLevel(DEBUG)
	assert.Equal(t, DEBUG, a.minConsoleLevel)

	require.NoError(t, lm.SetLogLevel("editor", ERROR, WARN))
	assert.Equal(t, ERROR, a.minConsoleLevel)
	assert.Equal(t, WARN, a.minFileLevel)
	assert.Error(t, lm.SetLogLevel("crowd", INFO, INFO))

	require.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}
