package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05.000"

// LogLevelStrings lists the accepted log level names.
func LogLevelStrings() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}

// ParseLevel returns the zerolog level for one of [LogLevelStrings].
// "warning" is accepted for warn and an empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(s)
	switch s {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q, use one of %v: %w", s, LogLevelStrings(), err)
	}
	return lvl, nil
}

// NewLogger returns a human readable console logger writing to out.
// A nil out logs to a colorable stderr.
func NewLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	noColor := out != nil
	if out == nil {
		out = colorable.NewColorableStderr()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: timeFormat,
	}).Level(level).With().Timestamp().Logger()
}
