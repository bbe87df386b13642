package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New creates a new logger writing to w. Debug enables debug level; terminals
// get human-readable console output, everything else gets JSON lines.
func New(w io.Writer, debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
