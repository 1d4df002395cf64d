package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, LevelFor(0))
	assert.Equal(t, zerolog.InfoLevel, LevelFor(1))
	assert.Equal(t, zerolog.DebugLevel, LevelFor(2))
	assert.Equal(t, zerolog.DebugLevel, LevelFor(5))
}

func TestLoggerRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 0)

	logger.Infof("hidden %d", 1)
	logger.Verbosef("hidden too")
	assert.Empty(t, buf.String())

	logger.Warnf("shown %s", "warning")
	assert.Contains(t, buf.String(), "shown warning")
}

func TestLoggerVerboseIncludesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 2)

	logger.Verbosef("planned %d items", 3)
	stop := logger.Measure("copying")
	stop()

	out := buf.String()
	assert.Contains(t, out, "planned 3 items")
	assert.Contains(t, out, "copying")
}

func TestZeroLoggerDiscards(t *testing.T) {
	var logger Logger
	logger.Infof("nothing")
	logger.Warnf("nothing")
	logger.Measure("nothing")()
	assert.Nil(t, logger.zlog)
}

func TestLoggerWritesPlainTextToNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 0)

	logger.Warnf("careful")
	assert.Contains(t, buf.String(), "WRN careful")
	assert.NotContains(t, buf.String(), "\x1b[")
}
