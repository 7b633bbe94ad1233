// Package format resolves the optional code-formatting capability applied to
// emitted output at flush time.
//
// Two formatter families are provided: the built-in Go formatter (goimports
// semantics) and external command formatters following the clang-format
// contract of full source on stdin, formatted source on stdout. External
// formatters are probed once per process; when the binary is missing, output
// degrades to unformatted for the process lifetime.
package format

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"golang.org/x/tools/imports"

	"github.com/teranos/emit/errors"
)

// Formatter reformats a complete source file given as a single string.
type Formatter interface {
	// Name identifies the formatter in logs and diagnostics.
	Name() string

	// Format returns the reformatted equivalent of src, which is the
	// full text of a source file.
	Format(src string) (string, error)
}

// GoFormatter formats Go source with goimports semantics: gofmt output plus
// import grouping and cleanup.
type GoFormatter struct{}

// Name returns "goimports".
func (GoFormatter) Name() string { return "goimports" }

// Format runs the goimports pipeline over src.
func (GoFormatter) Format(src string) (string, error) {
	out, err := imports.Process("generated.go", []byte(src), nil)
	if err != nil {
		return "", errors.Wrap(err, "goimports failed")
	}
	return string(out), nil
}

// CommandFormatter pipes source through an external binary: full source on
// stdin, formatted source on stdout.
type CommandFormatter struct {
	path string // resolved binary path
	args []string
	name string
}

// NewCommandFormatter builds a formatter from a shell-style command line,
// e.g. "clang-format -style=file". The binary must be resolvable on PATH;
// use Detect when availability is uncertain.
func NewCommandFormatter(commandLine string) (*CommandFormatter, error) {
	words, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed formatter command %q", commandLine)
	}
	if len(words) == 0 {
		return nil, errors.New("empty formatter command")
	}

	path, err := exec.LookPath(words[0])
	if err != nil {
		return nil, errors.Wrapf(err, "formatter %q not found on PATH", words[0])
	}

	return &CommandFormatter{
		path: path,
		args: words[1:],
		name: filepath.Base(words[0]),
	}, nil
}

// Name returns the base name of the formatter binary.
func (f *CommandFormatter) Name() string { return f.name }

// Format runs the external formatter over src.
func (f *CommandFormatter) Format(src string) (string, error) {
	cmd := exec.Command(f.path, f.args...)
	cmd.Stdin = strings.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "%s failed: %s", f.name, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
