// Package logging configures the diagnostics logger. Structured output goes
// to stderr so it never interleaves with prompts on stdout.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger at info level, or debug when verbose is set.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
