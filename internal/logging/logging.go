// ABOUTME: Structured logger setup on charmbracelet/log, exposed as *slog.Logger.
// ABOUTME: Writes to stderr and optionally to a size-rotated file via lumberjack.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // rotated log file; empty disables file output
	Quiet  bool   // drop stderr output (e.g. when stdio carries a protocol)
	Output io.Writer
}

// New builds a logger and returns a closer for the log file, if any.
func New(opts Options) (*slog.Logger, func() error) {
	var writers []io.Writer
	closer := func() error { return nil }

	if !opts.Quiet {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, out)
	}

	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			Compress:   true,
		}
		writers = append(writers, rotated)
		closer = rotated.Close
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		ReportTimestamp: true,
		Formatter:       formatter(opts.Format),
		Prefix:          "gains",
	})

	return slog.New(logger), closer
}

// ParseLevel maps a level name to a charm log level, defaulting to info.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
