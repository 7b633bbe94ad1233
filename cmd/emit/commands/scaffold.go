package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/emit"
	"github.com/teranos/emit/cgen"
	"github.com/teranos/emit/config"
	"github.com/teranos/emit/errors"
	"github.com/teranos/emit/format"
)

// ScaffoldCmd represents the scaffold command
var ScaffoldCmd = &cobra.Command{
	Use:   "scaffold <file.c>",
	Short: "Generate a C program skeleton",
	Long: `Generate a minimal C program at the given path.

The skeleton runs through the full emission pipeline: header and body streams
are accumulated separately, concatenated at flush time, and piped through the
configured formatter when one is available.`,
	Args: cobra.ExactArgs(1),
	RunE: runScaffold,
}

func runScaffold(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	target := args[0]

	opts := []emit.Option{emit.WithIndentUnit(cfg.IndentUnit())}
	if f := format.ForTarget(target, format.Options{
		Command:   cfg.FormatterCommand(),
		Goimports: cfg.Format.Goimports,
	}); f != nil {
		opts = append(opts, emit.WithFormatter(f))
	}

	e := emit.New(target, opts...)
	file := cgen.NewFile(e)

	file.SystemInclude("stdio.h")
	file.BeginFunc("int main(void)")
	file.Stmt(`printf("hello from emit\n")`)
	file.Stmt("return 0")
	file.EndFunc()

	if err := e.Flush(); err != nil {
		return errors.Wrapf(err, "failed to write %s", target)
	}

	fmt.Printf("✓ Generated %s\n", target)
	return nil
}
