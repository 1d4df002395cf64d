package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger wraps zerolog with the few helpers the copier needs. The zero value
// discards everything.
type Logger struct {
	zlog *zerolog.Logger
}

// LevelFor maps the -v count onto a zerolog level: warn by default, info for
// -v and debug for -vv or more.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

func New(writer io.Writer, verbosity int) Logger {
	if writer == nil {
		return Logger{}
	}
	console := zerolog.ConsoleWriter{Out: writer, TimeFormat: "15:04:05", NoColor: !isTerminal(writer)}
	zlog := zerolog.New(console).Level(LevelFor(verbosity)).With().Timestamp().Logger()
	return Logger{zlog: &zlog}
}

func (l Logger) Warnf(format string, args ...any) {
	if l.zlog == nil {
		return
	}
	l.zlog.Warn().Msgf(format, args...)
}

func (l Logger) Infof(format string, args ...any) {
	if l.zlog == nil {
		return
	}
	l.zlog.Info().Msgf(format, args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if l.zlog == nil {
		return
	}
	l.zlog.Debug().Msgf(format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if l.zlog == nil || l.zlog.GetLevel() > zerolog.DebugLevel {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.zlog.Debug().Str("took", elapsed.String()).Msg(label)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
