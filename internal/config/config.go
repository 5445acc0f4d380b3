// Package config loads the sqlfront CLI's YAML configuration: which
// dialect to parse with, whether to run in strict mode, and how to
// format output. The shape and the LoadConfig/DefaultConfig pair mirror
// the teacher CLI's config entry point.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParserConfig controls how input SQL is parsed.
type ParserConfig struct {
	Dialect         string `yaml:"dialect"`
	Strict          bool   `yaml:"strict"`
	IncludeComments bool   `yaml:"include_comments"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // "json" or "table"
	Pretty bool   `yaml:"pretty"`
}

// Config is the top-level CLI configuration.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
}

// DefaultConfig returns the configuration used when no file is given:
// ANSI dialect, non-strict parsing, pretty JSON output.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Dialect:         "ansi",
			Strict:          false,
			IncludeComments: false,
		},
		Output: OutputConfig{
			Format: "json",
			Pretty: true,
		},
	}
}

// LoadConfig reads and parses a YAML config file at path. An empty path
// returns DefaultConfig without touching the filesystem.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
