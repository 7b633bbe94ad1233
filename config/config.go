// Package config loads emit configuration from TOML files and the
// environment.
//
// Precedence (lowest to highest): system config < user config < project
// config < environment variables. The project config is an emit.toml found
// by walking up from the working directory.
package config

import (
	"strings"

	"github.com/teranos/emit/errors"
)

// Config is the root configuration for the emit toolkit
type Config struct {
	Emit   EmitConfig   `mapstructure:"emit" toml:"emit"`
	Format FormatConfig `mapstructure:"format" toml:"format"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
}

// EmitConfig controls output buffering defaults
type EmitConfig struct {
	// IndentWidth is the number of spaces per indent level
	IndentWidth int `mapstructure:"indent_width" toml:"indent_width"`
}

// FormatConfig controls the optional formatter applied at flush time
type FormatConfig struct {
	// Enabled turns all formatting off when false
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
	// Command is the external formatter command line for non-Go output
	Command string `mapstructure:"command" toml:"command"`
	// Goimports enables the built-in formatter for .go output
	Goimports bool `mapstructure:"goimports" toml:"goimports"`
}

// LogConfig controls logger initialization
type LogConfig struct {
	// JSON enables structured JSON log output
	JSON bool `mapstructure:"json" toml:"json"`
}

// IndentUnit returns the indent prefix derived from IndentWidth.
func (c *Config) IndentUnit() string {
	if c.Emit.IndentWidth <= 0 {
		return ""
	}
	return strings.Repeat(" ", c.Emit.IndentWidth)
}

// FormatterCommand returns the external formatter command line, or empty
// when formatting is disabled.
func (c *Config) FormatterCommand() string {
	if !c.Format.Enabled {
		return ""
	}
	return c.Format.Command
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Emit.IndentWidth < 0 {
		return errors.Newf("emit.indent_width must be non-negative, got %d", c.Emit.IndentWidth)
	}
	if c.Format.Enabled && c.Format.Command == "" && !c.Format.Goimports {
		return errors.New("format.enabled is true but no formatter is configured")
	}
	return nil
}
