package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/emit/config"
	"github.com/teranos/emit/errors"
	"github.com/teranos/emit/format"
	"github.com/teranos/emit/logger"
	"github.com/teranos/emit/watch"
)

var (
	fmtStdout bool
	fmtCheck  bool
	fmtWatch  bool
)

// FmtCmd represents the fmt command
var FmtCmd = &cobra.Command{
	Use:   "fmt <files...>",
	Short: "Format source files through the configured formatter",
	Long: `Format source files in place through the configured formatter.

Go files use the built-in goimports formatter; everything else is piped
through the external command from format.command (clang-format by default).
Files whose formatter is unavailable are left untouched.

Examples:
  emit fmt main.c             # Format in place
  emit fmt --stdout main.c    # Print formatted source, leave file alone
  emit fmt --check src/*.c    # Exit nonzero when formatting is needed
  emit fmt --watch main.c     # Re-format whenever the file changes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	FmtCmd.Flags().BoolVar(&fmtStdout, "stdout", false, "Write formatted source to stdout instead of in place")
	FmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Report files that need formatting without rewriting them")
	FmtCmd.Flags().BoolVarP(&fmtWatch, "watch", "w", false, "Watch files and re-format on change (not combinable with --stdout or --check)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	if fmtWatch && (fmtStdout || fmtCheck) {
		return errors.New("--watch cannot be combined with --stdout or --check")
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if !cfg.Format.Enabled {
		return errors.WithHint(
			errors.New("formatting is disabled"),
			"set format.enabled = true in emit.toml")
	}

	if fmtWatch {
		return watchAndFormat(cfg, args)
	}

	var needFormatting []string
	for _, path := range args {
		changed, err := formatFile(cfg, path, fmtStdout, fmtCheck, nil)
		if err != nil {
			return errors.Wrapf(err, "failed to format %s", path)
		}
		if changed && fmtCheck {
			needFormatting = append(needFormatting, path)
		}
	}

	if fmtCheck && len(needFormatting) > 0 {
		for _, path := range needFormatting {
			fmt.Printf("✗ %s needs formatting\n", path)
		}
		return errors.Newf("%d file(s) need formatting", len(needFormatting))
	}
	return nil
}

// formatFile pipes one file through its formatter. Returns whether the
// formatted output differs from the source. beforeWrite, when non-nil, runs
// immediately before the file is rewritten and never otherwise.
func formatFile(cfg *config.Config, path string, toStdout, checkOnly bool, beforeWrite func()) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", path)
	}

	f := format.ForTarget(path, format.Options{
		Command:   cfg.FormatterCommand(),
		Goimports: cfg.Format.Goimports,
	})
	if f == nil {
		// No formatter available for this target; nothing to do
		if toStdout {
			fmt.Print(string(src))
		}
		return false, nil
	}

	out, err := f.Format(string(src))
	if err != nil {
		return false, err
	}
	changed := out != string(src)

	if toStdout {
		fmt.Print(out)
		return changed, nil
	}
	if checkOnly || !changed {
		return changed, nil
	}

	if beforeWrite != nil {
		beforeWrite()
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return false, errors.Wrapf(err, "failed to rewrite %s", path)
	}
	fmt.Printf("✓ Formatted %s\n", path)
	return changed, nil
}

// formatOnChange builds the watch callback: each changed file runs back
// through its formatter. The own-write mark is taken only immediately before
// a rewrite; a mark taken on a no-op change would go stale and swallow the
// next genuine edit.
func formatOnChange(cfg *config.Config, watcher *watch.Watcher) watch.OnChange {
	return func(path string) {
		beforeWrite := func() { watcher.MarkOwnWrite(path) }
		if _, err := formatFile(cfg, path, false, false, beforeWrite); err != nil {
			logger.Logger.Warnw("Format on change failed", "path", path, "error", err)
		}
	}
}

// watchAndFormat re-formats each file whenever it changes, until interrupted.
func watchAndFormat(cfg *config.Config, paths []string) error {
	var onChange watch.OnChange
	watcher, err := watch.New(paths, func(path string) { onChange(path) })
	if err != nil {
		return err
	}
	onChange = formatOnChange(cfg, watcher)
	defer watcher.Close()
	watcher.Start()

	fmt.Printf("Watching %d file(s) for changes, Ctrl-C to stop\n", len(paths))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
