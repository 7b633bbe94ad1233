package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/emit/errors"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Emitter defaults
	v.SetDefault("emit.indent_width", 4)

	// Formatter defaults
	v.SetDefault("format.enabled", true)
	v.SetDefault("format.command", "clang-format") // stdin->stdout contract
	v.SetDefault("format.goimports", true)

	// Logging defaults
	v.SetDefault("log.json", false)
}

// Default returns a Config populated with default values
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var config Config
	// Defaults always unmarshal cleanly
	_ = v.Unmarshal(&config)
	return &config
}

// WriteDefault materializes the default configuration as TOML at path.
// Fails if the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("%s already exists", path)
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
