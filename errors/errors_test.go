package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("write failed")
	wrapped := Wrapf(original, "failed to write %s", "/tmp/out.c")

	assert.Contains(t, wrapped.Error(), "failed to write /tmp/out.c")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("formatter unavailable"), "install clang-format for formatted output")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "install clang-format for formatted output", hints[0])
}

type pathError struct {
	path string
}

func (e *pathError) Error() string {
	return "unwritable: " + e.path
}

func TestAs(t *testing.T) {
	original := &pathError{path: "/nonexistent/out.c"}
	wrapped := Wrap(original, "flush failed")

	var pe *pathError
	require.True(t, As(wrapped, &pe))
	assert.Equal(t, "/nonexistent/out.c", pe.path)
}
