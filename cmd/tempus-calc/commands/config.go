package commands

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config carries the environment-driven settings shared by commands.
type Config struct {
	// Locale is the default BCP 47 tag for fmt and the repl.
	Locale string `env:"TEMPUS_LOCALE" env-default:"en"`

	// Presets overrides the preset store location.
	Presets string `env:"TEMPUS_PRESETS" env-default:""`

	// Verbose mirrors repl trace events to stderr.
	Verbose bool `env:"TEMPUS_VERBOSE" env-default:"false"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// presetPath resolves the preset store location: the configured path
// when set, otherwise a dotfile under the user's home directory.
func presetPath(cfg Config) (string, error) {
	if cfg.Presets != "" {
		return cfg.Presets, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tempus", "presets.json"), nil
}
