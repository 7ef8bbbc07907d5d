// Package logging configures the process-wide zerolog logger.
//
// Logs always go to stderr: on the stdio transport stdout carries MCP
// JSON-RPC frames and must not be interleaved with log lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Format selects the log line encoding.
type Format string

const (
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
	// FormatConsole writes human-readable, colourless lines.
	FormatConsole Format = "console"
)

// Setup installs the global logger at the given level and format.
func Setup(level string, format Format) error {
	return SetupWriter(os.Stderr, level, format)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level string, format Format) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var out io.Writer
	switch Format(strings.ToLower(strings.TrimSpace(string(format)))) {
	case FormatJSON, "":
		out = w
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	default:
		return fmt.Errorf("invalid log format %q: must be 'json' or 'console'", format)
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}

// ParseLevel maps a level name to a zerolog level; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
