// Package emit accumulates generated source text and materializes it to a
// file, optionally piping the result through a formatter at flush time.
//
// An Emitter keeps two independent streams: a header stream written first and
// never indented (includes, prologues), and a body stream indented per line
// according to a caller-controlled counter. Indent management is entirely the
// caller's responsibility; there is no push/pop discipline. Emitters are not
// safe for concurrent use — callers sharing one must serialize externally.
package emit

import (
	"os"
	"strings"

	"github.com/teranos/emit/errors"
	"github.com/teranos/emit/format"
	"github.com/teranos/emit/logger"
)

// DefaultIndentUnit is the prefix repeated once per indent level.
const DefaultIndentUnit = "    "

// Emitter buffers a header stream and a body stream for a single output
// file. Append operations never fail; the only fallible operation is Flush.
type Emitter struct {
	path   string
	header strings.Builder
	body   strings.Builder

	// Indent is the nesting depth applied by Line. Callers mutate it
	// directly (or via SetIndent) between appends. Levels at or below
	// zero produce no prefix.
	Indent int

	indentUnit string
	formatter  format.Formatter
}

// Option configures an Emitter at construction time.
type Option func(*Emitter)

// WithFormatter binds a formatter that Flush pipes the concatenated output
// through. With no formatter bound, output is written as accumulated.
func WithFormatter(f format.Formatter) Option {
	return func(e *Emitter) {
		e.formatter = f
	}
}

// WithIndentUnit overrides the four-space indent prefix.
func WithIndentUnit(unit string) Option {
	return func(e *Emitter) {
		e.indentUnit = unit
	}
}

// New returns an Emitter targeting path. The path is used verbatim and not
// validated until Flush.
func New(path string, opts ...Option) *Emitter {
	e := &Emitter{
		path:       path,
		indentUnit: DefaultIndentUnit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Raw appends s to the body stream verbatim: no indent, no newline.
func (e *Emitter) Raw(s string) {
	e.body.WriteString(s)
}

// Line appends s to the body stream, prefixed by the indent unit repeated
// Indent times and followed by a newline.
func (e *Emitter) Line(s string) {
	e.body.WriteString(e.prefix())
	e.body.WriteString(s)
	e.body.WriteByte('\n')
}

// HeaderLine appends s and a newline to the header stream. The indent
// counter never applies to the header.
func (e *Emitter) HeaderLine(s string) {
	e.header.WriteString(s)
	e.header.WriteByte('\n')
}

// SetIndent sets the indent counter. Equivalent to assigning Indent.
func (e *Emitter) SetIndent(level int) {
	e.Indent = level
}

// Path returns the flush target given at construction.
func (e *Emitter) Path() string {
	return e.path
}

// Header returns the accumulated header stream.
func (e *Emitter) Header() string {
	return e.header.String()
}

// Body returns the accumulated body stream.
func (e *Emitter) Body() string {
	return e.body.String()
}

// String returns header followed by body — the exact text Flush writes when
// no formatter is bound.
func (e *Emitter) String() string {
	return e.header.String() + e.body.String()
}

func (e *Emitter) prefix() string {
	if e.Indent <= 0 {
		return ""
	}
	return strings.Repeat(e.indentUnit, e.Indent)
}

// Flush concatenates header and body, formats the result when a formatter
// is bound, and writes it to the target path, truncating any existing file.
// Formatter failure is not fatal: the unformatted text is written instead
// and a warning is logged. Write errors are returned unretried, with the
// file handle released on all paths.
func (e *Emitter) Flush() error {
	final := e.String()

	if e.formatter != nil {
		formatted, err := e.formatter.Format(final)
		if err != nil {
			logger.Logger.Warnw("Formatter failed, writing unformatted output",
				"formatter", e.formatter.Name(),
				"path", e.path,
				"error", err)
		} else {
			final = formatted
		}
	}

	if err := os.WriteFile(e.path, []byte(final), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", e.path)
	}
	return nil
}
