// Package config loads the checker's runtime options from a YAML file,
// in the same load-then-validate style the rest of the codebase uses
// for on-disk YAML documents.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the checker driver's runtime options.
type Config struct {
	// SuggestionThreshold holds a maximum Levenshtein distance for name
	// hints. The checker does not read it: types.suggestionHint always
	// uses a fixed distance of 2.
	SuggestionThreshold int `yaml:"suggestion_threshold"`
	// Color enables ANSI-colored diagnostic output.
	Color bool `yaml:"color"`
	// StrictOverloads is loaded and kept but read by nothing; the
	// checker's overload resolution behaves the same whatever its value.
	StrictOverloads bool `yaml:"strict_overloads"`
}

// Default returns the checker's built-in defaults.
func Default() *Config {
	return &Config{
		SuggestionThreshold: 2,
		Color:               true,
		StrictOverloads:     false,
	}
}

// Load reads and parses a YAML config file at path, filling in defaults
// for absent fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}
