package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/emit/config"
	"github.com/teranos/emit/format"
	"github.com/teranos/emit/watch"
)

func testConfig() *config.Config {
	return &config.Config{
		Emit:   config.EmitConfig{IndentWidth: 4},
		Format: config.FormatConfig{Enabled: true, Goimports: true},
	}
}

func TestFormatFile_RewritesUnformattedGo(t *testing.T) {
	format.Reset()
	t.Cleanup(format.Reset)

	path := filepath.Join(t.TempDir(), "x.go")
	require.NoError(t, os.WriteFile(path, []byte("package x\n\nfunc   F(  ) {}\n"), 0644))

	changed, err := formatFile(testConfig(), path, false, false, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package x\n\nfunc F() {}\n", string(data))
}

func TestFormatFile_CheckLeavesFileAlone(t *testing.T) {
	format.Reset()
	t.Cleanup(format.Reset)

	path := filepath.Join(t.TempDir(), "x.go")
	original := "package x\n\nfunc   F(  ) {}\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	changed, err := formatFile(testConfig(), path, false, true, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "check mode must not rewrite")
}

func TestFormatFile_FormattedFileUnchanged(t *testing.T) {
	format.Reset()
	t.Cleanup(format.Reset)

	path := filepath.Join(t.TempDir(), "x.go")
	formatted := "package x\n\nfunc F() {}\n"
	require.NoError(t, os.WriteFile(path, []byte(formatted), 0644))

	changed, err := formatFile(testConfig(), path, false, false, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFormatFile_NoFormatterForTarget(t *testing.T) {
	format.Reset()
	t.Cleanup(format.Reset)

	// Formatting enabled but no external command configured: non-Go
	// targets have no formatter and are left untouched.
	cfg := testConfig()
	cfg.Format.Command = ""

	path := filepath.Join(t.TempDir(), "main.c")
	original := "int   main( void ){return 0;}\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	changed, err := formatFile(cfg, path, false, false, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestFormatFile_MissingFile(t *testing.T) {
	format.Reset()
	t.Cleanup(format.Reset)

	_, err := formatFile(testConfig(), filepath.Join(t.TempDir(), "missing.go"), false, false, nil)
	require.Error(t, err)
}

func TestFormatFile_BeforeWriteOnlyOnRewrite(t *testing.T) {
	format.Reset()
	t.Cleanup(format.Reset)

	dir := t.TempDir()
	calls := 0
	beforeWrite := func() { calls++ }

	// Already-formatted file: no rewrite, hook must not run
	clean := filepath.Join(dir, "clean.go")
	require.NoError(t, os.WriteFile(clean, []byte("package x\n\nfunc F() {}\n"), 0644))
	changed, err := formatFile(testConfig(), clean, false, false, beforeWrite)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, calls)

	// Read failure: hook must not run either
	_, err = formatFile(testConfig(), filepath.Join(dir, "missing.go"), false, false, beforeWrite)
	require.Error(t, err)
	assert.Equal(t, 0, calls)

	// Unformatted file: hook runs exactly once, before the rewrite
	dirty := filepath.Join(dir, "dirty.go")
	require.NoError(t, os.WriteFile(dirty, []byte("package x\n\nfunc   F(  ) {}\n"), 0644))
	changed, err = formatFile(testConfig(), dirty, false, false, beforeWrite)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, calls)
}

func TestFormatOnChange_NoOpChangeDoesNotSuppressNextEdit(t *testing.T) {
	format.Reset()
	t.Cleanup(format.Reset)

	path := filepath.Join(t.TempDir(), "x.go")
	require.NoError(t, os.WriteFile(path, []byte("package x\n\nfunc F() {}\n"), 0644))

	cfg := testConfig()
	var onChange watch.OnChange
	fired := make(chan struct{}, 4)
	w, err := watch.New([]string{path}, func(p string) {
		onChange(p)
		fired <- struct{}{}
	})
	require.NoError(t, err)
	onChange = formatOnChange(cfg, w)
	defer w.Close()
	w.Start()

	// A save that is already formatted: the callback runs but rewrites
	// nothing, so no own-write mark may be taken.
	require.NoError(t, os.WriteFile(path, []byte("package x\n\nfunc G() {}\n"), 0644))
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watch callback never fired for the no-op change")
	}

	// The next genuine edit must still be picked up and reformatted.
	require.NoError(t, os.WriteFile(path, []byte("package x\n\nfunc   H(  ) {}\n"), 0644))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && string(data) == "package x\n\nfunc H() {}\n"
	}, 10*time.Second, 100*time.Millisecond, "edit after a no-op change was never reformatted")
}

func TestRunFmt_WatchRejectsCheckAndStdout(t *testing.T) {
	restore := func() {
		fmtStdout = false
		fmtCheck = false
		fmtWatch = false
	}
	t.Cleanup(restore)

	for _, other := range []*bool{&fmtCheck, &fmtStdout} {
		restore()
		fmtWatch = true
		*other = true

		err := runFmt(FmtCmd, []string{"x.go"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--watch")
	}
}
