// Package logging builds the process-wide debug logger.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

const appName = "lms-contract-tests"

// New returns a console logger writing to out. Debug messages, which include everything
// written through Printf, are only emitted if debug is true.
func New(out io.Writer, debug, noColor bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339Nano,
		NoColor:    noColor,
	}
	return zerolog.New(output).Level(level).With().
		Timestamp().
		Str("app", appName).
		Logger()
}
