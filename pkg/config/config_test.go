package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kevinlc123/qupath/pkg/roi"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Converter.PixelWidth != 1.0 {
		t.Errorf("Expected default pixel width 1.0, got %v", cfg.Converter.PixelWidth)
	}
	if cfg.Converter.PixelHeight != 1.0 {
		t.Errorf("Expected default pixel height 1.0, got %v", cfg.Converter.PixelHeight)
	}
	if cfg.Converter.Flatness != roi.DefaultFlatness {
		t.Errorf("Expected default flatness %v, got %v", roi.DefaultFlatness, cfg.Converter.Flatness)
	}
	if cfg.Output.Verbose {
		t.Error("Expected verbose output to be disabled by default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for missing config file, got %v", err)
	}

	defaults := DefaultConfig()
	if *cfg != *defaults {
		t.Errorf("Expected defaults for missing config file, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Converter.PixelWidth = 0.25
	cfg.Converter.PixelHeight = 0.5
	cfg.Converter.Flatness = 0.1
	cfg.Output.Verbose = true

	if err := SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("Loaded config %+v does not match saved config %+v", loaded, cfg)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	partial := []byte("converter:\n  flatness: 0.05\n")
	if err := os.WriteFile(configPath, partial, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Converter.Flatness != 0.05 {
		t.Errorf("Expected overridden flatness 0.05, got %v", cfg.Converter.Flatness)
	}
	if cfg.Converter.PixelWidth != 1.0 {
		t.Errorf("Expected default pixel width to survive partial config, got %v", cfg.Converter.PixelWidth)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("converter: ["), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
