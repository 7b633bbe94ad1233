package format

import (
	"path/filepath"
	"sync"

	"github.com/teranos/emit/logger"
)

var (
	resolveOnce sync.Once
	resolved    Formatter
)

// Options selects which formatter serves a given output target.
type Options struct {
	// Command is the external formatter command line (e.g. "clang-format
	// -style=file"). Empty disables external formatting.
	Command string

	// Goimports enables the built-in Go formatter for .go targets.
	Goimports bool
}

// Detect probes whether the command line's binary is on PATH and returns a
// formatter for it. The boolean reports availability; a miss is not an
// error, callers fall back to unformatted output.
func Detect(commandLine string) (Formatter, bool) {
	f, err := NewCommandFormatter(commandLine)
	if err != nil {
		return nil, false
	}
	return f, true
}

// Resolve probes the configured external formatter exactly once per process.
// When the binary is missing it logs a single notice, and every subsequent
// call returns nil: output is written unformatted for the process lifetime.
func Resolve(commandLine string) Formatter {
	resolveOnce.Do(func() {
		if commandLine == "" {
			return
		}
		f, ok := Detect(commandLine)
		if !ok {
			logger.Logger.Warnf("Formatter %q not found on PATH, output will be written unformatted", commandLine)
			return
		}
		resolved = f
	})
	return resolved
}

// Reset clears the process-wide formatter resolution (useful for testing).
func Reset() {
	resolveOnce = sync.Once{}
	resolved = nil
}

// ForTarget picks the formatter for an output path: .go targets get the
// built-in Go formatter when enabled, everything else the configured
// external command. Returns nil when no formatter applies.
func ForTarget(path string, opts Options) Formatter {
	if opts.Goimports && filepath.Ext(path) == ".go" {
		return GoFormatter{}
	}
	if opts.Command == "" {
		return nil
	}
	return Resolve(opts.Command)
}
