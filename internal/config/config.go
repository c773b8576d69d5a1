// Package config holds the shell's constants and the optional per-user
// config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the parsed config file. Zero values fall back to defaults at
// the point of use; Color distinguishes unset from explicitly false.
type Config struct {
	Prompt   string `yaml:"prompt"`
	Color    *bool  `yaml:"color"`
	Autosave string `yaml:"autosave"`
}

func Default() *Config {
	return &Config{Prompt: DefaultPrompt}
}

// Load reads the config file at path. A missing file is not an error:
// the defaults are returned. A present but malformed file is an error,
// silently ignoring a typo'd config helps nobody.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	return cfg, nil
}

// DefaultPath is $HOME/.shamrc, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigFileName)
}
