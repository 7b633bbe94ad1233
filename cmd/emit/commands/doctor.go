package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/emit/config"
	"github.com/teranos/emit/errors"
	"github.com/teranos/emit/format"
)

// DoctorCmd represents the doctor command
var DoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check formatter availability and configuration",
	Long: `Report the effective configuration and probe each formatter.

A missing external formatter is not an error: output degrades to unformatted
for the process lifetime. doctor exists so the degradation is visible before
a generation run, not after.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	pterm.DefaultSection.Println("Configuration")
	pterm.Printf("indent width: %d\n", cfg.Emit.IndentWidth)
	pterm.Printf("formatting enabled: %v\n", cfg.Format.Enabled)
	pterm.Printf("external formatter: %s\n", cfg.Format.Command)
	pterm.Printf("goimports for .go output: %v\n", cfg.Format.Goimports)

	pterm.DefaultSection.Println("Formatters")
	if cfg.Format.Goimports {
		pterm.Success.Println("goimports (built in)")
	} else {
		pterm.Warning.Println("goimports disabled, .go output will be unformatted")
	}

	if !cfg.Format.Enabled {
		pterm.Warning.Println("formatting disabled, all output will be unformatted")
		return nil
	}

	if f, ok := format.Detect(cfg.Format.Command); ok {
		pterm.Success.Printf("%s available\n", f.Name())
	} else {
		pterm.Warning.Printf("%q not found on PATH, non-Go output will be unformatted\n", cfg.Format.Command)
	}
	return nil
}
