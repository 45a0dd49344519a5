// Package config provides rendering options for gridmark and their
// discovery and loading from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project-level configuration file name.
const FileName = ".gridmark.yaml"

// Options controls how grids are rendered and how the CLI behaves.
type Options struct {
	// MaxColumnWidth bounds rendered column width in terminal cells.
	// Zero means unbounded.
	MaxColumnWidth int `yaml:"max_column_width"`

	// Color selects colorized output: "auto", "always", or "never".
	Color string `yaml:"color"`

	// LogLevel sets the logger level: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in option values.
func Default() Options {
	return Options{
		MaxColumnWidth: 40,
		Color:          "auto",
		LogLevel:       "info",
	}
}

// Validate checks option values for consistency.
func (o Options) Validate() error {
	if o.MaxColumnWidth < 0 {
		return fmt.Errorf("max_column_width must not be negative, got %d", o.MaxColumnWidth)
	}
	switch o.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always, or never, got %q", o.Color)
	}
	switch o.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", o.LogLevel)
	}
	return nil
}

// Discover searches dir and its ancestors for a configuration file.
func Discover(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads options from path, layered over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}
