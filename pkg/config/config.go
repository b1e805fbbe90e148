// Package config provides configuration loading and management for the ROI
// geometry engine. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kevinlc123/qupath/pkg/roi"
)

// Config represents the engine configuration loaded from YAML.
type Config struct {
	// Converter parameters
	Converter struct {
		// PixelWidth scales x coordinates during conversion between
		// ROIs and geometry.
		PixelWidth float64 `yaml:"pixelWidth"`

		// PixelHeight scales y coordinates during conversion between
		// ROIs and geometry.
		PixelHeight float64 `yaml:"pixelHeight"`

		// Flatness is the maximum deviation allowed when curved shape
		// boundaries are approximated by straight segments.
		Flatness float64 `yaml:"flatness"`
	} `yaml:"converter"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Converter.PixelWidth = 1.0
	cfg.Converter.PixelHeight = 1.0
	cfg.Converter.Flatness = roi.DefaultFlatness

	cfg.Output.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
