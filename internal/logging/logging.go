// Package logging configures the process-wide zerolog logger. The TUI
// owns the terminal, so logs go to a file or nowhere, never stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. With an empty file, output is
// discarded. The returned closer flushes and releases the log file.
func Setup(level, file string) (func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return closer, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var writer io.Writer = io.Discard
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return closer, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		closer = func() { _ = f.Close() }
		writer = f
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
	return closer, nil
}

// Component returns a logger tagged with a component identifier.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
