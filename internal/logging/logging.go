// Package logging builds the process-wide zerolog logger over an
// append-only log file.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"localllmui/internal/common/fsutil"
)

// Options configures New.
type Options struct {
	// File is the log file path; empty disables the file sink.
	File string
	// Level is a zerolog level name; unknown values fall back to info.
	Level string
	// Console mirrors log lines to Stderr in human-readable form.
	Console bool
	// MaxSizeMB is the rotation threshold; 0 uses the lumberjack default.
	MaxSizeMB int
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and a closer for the file sink. With neither File nor
// Console set, logs go to Stderr as JSON so they are never silently dropped.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)
	if opts.File != "" {
		path, err := fsutil.EnsureParentDir(opts.File)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		lj := &lumberjack.Logger{Filename: path, MaxSize: opts.MaxSizeMB}
		writers = append(writers, lj)
		closer = lj
	}
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339})
	}
	if len(writers) == 0 {
		writers = append(writers, stderr)
	}
	var w io.Writer = writers[0]
	if len(writers) > 1 {
		w = zerolog.MultiLevelWriter(writers...)
	}
	l := zerolog.New(w).Level(ParseLevel(opts.Level)).With().Timestamp().Str("service", "localllmui").Logger()
	return l, closer, nil
}

// ParseLevel maps a level name to a zerolog level. "off" disables logging.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "disabled", "none":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
