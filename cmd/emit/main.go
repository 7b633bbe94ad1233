package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/emit/cmd/emit/commands"
	"github.com/teranos/emit/config"
	"github.com/teranos/emit/logger"
	"github.com/teranos/emit/version"
)

var rootCmd = &cobra.Command{
	Use:     "emit",
	Version: version.Get().Short(),
	Short:   "emit - Source emission and formatting toolkit",
	Long: `emit - Buffer generated source text and materialize it through a formatter.

emit accumulates a header stream and an indented body stream per output file
and writes their concatenation at flush time, optionally piped through a
formatter (goimports for Go, an external stdin/stdout command such as
clang-format for everything else).

Available commands:
  fmt      - Format source files through the configured formatter
  scaffold - Generate a C program skeleton
  doctor   - Check formatter availability and configuration
  config   - Manage emit configuration
  version  - Show version information

Examples:
  emit scaffold main.c        # Generate and format a C skeleton
  emit fmt src/*.c            # Format files in place
  emit fmt --check src/*.c    # Fail when files need formatting
  emit fmt --watch main.c     # Re-format on every change
  emit doctor                 # Report formatter availability`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := logger.Initialize(cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commands.FmtCmd)
	rootCmd.AddCommand(commands.ScaffoldCmd)
	rootCmd.AddCommand(commands.DoctorCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
