package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/neuralfield/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Field.Nodes != 15 {
		t.Errorf("expected 15 nodes, got %d", cfg.Field.Nodes)
	}
	if cfg.Field.Threshold != 150 {
		t.Errorf("expected threshold 150, got %f", cfg.Field.Threshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	data := []byte("field:\n  nodes: 20\n  threshold: 90\ntheme: sunset\npalette:\n  core: \"#ffffff\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Field.Nodes != 20 || cfg.Field.Threshold != 90 {
		t.Errorf("expected overrides, got %+v", cfg.Field)
	}
	if cfg.Field.Speed != field.DefaultSpeed {
		t.Errorf("expected default speed, got %f", cfg.Field.Speed)
	}
	if cfg.Theme != "sunset" {
		t.Errorf("expected theme sunset, got %s", cfg.Theme)
	}

	fc, err := cfg.ToField(field.NeonPalette())
	if err != nil {
		t.Fatalf("to field: %v", err)
	}
	if fc.Palette.Core.Color != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("expected white core, got %v", fc.Palette.Core.Color)
	}
	if fc.Palette.Glow != field.NeonPalette().Glow {
		t.Error("unset palette entries should keep the base colour")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	cfg := GetPreset("dense")
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Field != cfg.Field || got.Seed != 42 {
		t.Errorf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero nodes", func(c *Config) { c.Field.Nodes = 0 }},
		{"negative speed", func(c *Config) { c.Field.Speed = -1 }},
		{"inverted radius", func(c *Config) { c.Field.MinRadius = 5; c.Field.MaxRadius = 2 }},
		{"zero threshold", func(c *Config) { c.Field.Threshold = 0 }},
		{"negative phase", func(c *Config) { c.Field.PhaseStep = -0.1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative size", func(c *Config) { c.Width = -1 }},
		{"bad colour", func(c *Config) { c.Palette.Glow = "violet" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("portfolio")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Field.Nodes != 15 {
		t.Errorf("expected 15 nodes, got %d", cfg.Field.Nodes)
	}

	cfg.Field.Nodes = 99
	if Presets["portfolio"].Field.Nodes != 15 {
		t.Error("GetPreset must return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
