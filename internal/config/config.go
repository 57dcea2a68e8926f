package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/neuralfield/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS    = 30
	DefaultWidth  = 800
	DefaultHeight = 400
	DefaultFrames = 120
	DefaultTheme  = "neon"
)

var ErrInvalidConfig = errors.New("config: invalid config")

type Config struct {
	Field   FieldConfig   `yaml:"field"`
	Palette PaletteConfig `yaml:"palette,omitempty"`
	Theme   string        `yaml:"theme"`
	FPS     int           `yaml:"fps"`
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Frames  int           `yaml:"frames"`
	Seed    int64         `yaml:"seed"`
}

type FieldConfig struct {
	Nodes     int     `yaml:"nodes"`
	Speed     float64 `yaml:"speed"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	Threshold float64 `yaml:"threshold"`
	PhaseStep float64 `yaml:"phase_step"`
}

// PaletteConfig overrides theme colours with hex strings such as "#9d00ff".
// Empty entries keep the theme colour.
type PaletteConfig struct {
	Glow   string `yaml:"glow,omitempty"`
	Accent string `yaml:"accent,omitempty"`
	Body   string `yaml:"body,omitempty"`
	Halo   string `yaml:"halo,omitempty"`
	Core   string `yaml:"core,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Field: FieldConfig{
			Nodes:     field.DefaultNodeCount,
			Speed:     field.DefaultSpeed,
			MinRadius: field.DefaultMinRadius,
			MaxRadius: field.DefaultMaxRadius,
			Threshold: field.DefaultThreshold,
			PhaseStep: field.DefaultPhaseStep,
		},
		Theme:  DefaultTheme,
		FPS:    DefaultFPS,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Frames: DefaultFrames,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	f := c.Field
	switch {
	case f.Nodes <= 0:
		return fmt.Errorf("%w: nodes must be positive, got %d", ErrInvalidConfig, f.Nodes)
	case f.Speed < 0:
		return fmt.Errorf("%w: speed must not be negative, got %f", ErrInvalidConfig, f.Speed)
	case f.MinRadius <= 0 || f.MaxRadius < f.MinRadius:
		return fmt.Errorf("%w: radius range [%f, %f] is empty", ErrInvalidConfig, f.MinRadius, f.MaxRadius)
	case f.Threshold <= 0:
		return fmt.Errorf("%w: threshold must be positive, got %f", ErrInvalidConfig, f.Threshold)
	case f.PhaseStep < 0:
		return fmt.Errorf("%w: phase_step must not be negative, got %f", ErrInvalidConfig, f.PhaseStep)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: size %dx%d is negative", ErrInvalidConfig, c.Width, c.Height)
	}
	if _, err := c.Palette.Apply(field.NeonPalette()); err != nil {
		return err
	}
	return nil
}

// ToField builds the field configuration on top of a theme palette.
func (c *Config) ToField(base field.Palette) (field.Config, error) {
	p, err := c.Palette.Apply(base)
	if err != nil {
		return field.Config{}, err
	}
	return field.Config{
		NodeCount: c.Field.Nodes,
		Speed:     c.Field.Speed,
		MinRadius: c.Field.MinRadius,
		MaxRadius: c.Field.MaxRadius,
		Threshold: c.Field.Threshold,
		PhaseStep: c.Field.PhaseStep,
		Palette:   p,
	}, nil
}

// Apply returns base with every non-empty override parsed in.
func (p PaletteConfig) Apply(base field.Palette) (field.Palette, error) {
	targets := []struct {
		hex string
		dst *color.RGBA
	}{
		{p.Glow, &base.Glow.Color},
		{p.Accent, &base.Accent.Color},
		{p.Body, &base.Body.Color},
		{p.Halo, &base.Halo.Color},
		{p.Core, &base.Core.Color},
	}
	for _, t := range targets {
		if t.hex == "" {
			continue
		}
		c, err := ParseColor(t.hex)
		if err != nil {
			return base, err
		}
		*t.dst = c
	}
	return base, nil
}

func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidConfig, hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
