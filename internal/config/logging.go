package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide logger. Output is a human-readable
// console writer on stderr; debug switches the level from info to debug.
func NewLogger(debug bool) zerolog.Logger {
	return NewLoggerTo(os.Stderr, debug)
}

// NewLoggerTo builds a logger writing to w. Split out so tests can capture
// the warning and diagnostic output the tool promises to emit.
func NewLoggerTo(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
