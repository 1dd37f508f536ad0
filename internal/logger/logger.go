// Package logger sets up the process-wide zerolog logger.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options defines logger initialization parameters.
type Options struct {
	// Level is a zerolog level name; unknown values fall back to info.
	Level string
	// Pretty switches from JSON lines to a human-readable console writer.
	Pretty bool
}

var global zerolog.Logger

// Init configures the global logger. Progress output goes to stderr so
// stdout stays free for whatever a caller pipes the binary into.
func Init(opts Options) {
	var out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}

	if opts.Pretty {
		global = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	} else {
		global = zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	}
	log.Logger = global
}

// Get returns the global logger.
func Get() *zerolog.Logger { return &global }
