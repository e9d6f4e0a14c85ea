// Package logging opens the flux log file. The terminal belongs to the
// frontend while a selector runs, so nothing is logged to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// FileName is the log file inside the logs directory.
const FileName = "flux.log"

// Options configures Open.
type Options struct {
	Dir   string // directory holding FileName
	Level string // trace, debug, info, warn or error
}

// Open creates dir if needed and returns a structured logger appending to
// dir/flux.log, plus a cleanup func that closes the file.
func Open(opts Options) (pslog.Logger, func() error, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create %s: %w", opts.Dir, err)
	}
	path := filepath.Join(opts.Dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	logger, err := New(f, opts.Level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	logger.Debug("logger initialized", "path", path, "pid", os.Getpid())
	return logger, f.Close, nil
}

// New returns a structured logger writing to w at the named level.
func New(w io.Writer, level string) (pslog.Logger, error) {
	opts := pslog.Options{
		Mode:    pslog.ModeStructured,
		NoColor: true,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "warn":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return nil, fmt.Errorf("logging: unknown level %q", level)
	}
	return pslog.NewWithOptions(w, opts), nil
}

// Discard returns a logger that drops everything.
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
}
