// Package logging builds the console logger shared by the CLI and the GUI.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a human-readable console logger writing to w. Unknown or empty
// levels fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.NoColor = true
	})).Level(lvl).With().Timestamp().Logger()
}
