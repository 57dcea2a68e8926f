package field

import "image/color"

const (
	DefaultNodeCount = 15
	DefaultSpeed     = 0.5
	DefaultMinRadius = 2.0
	DefaultMaxRadius = 5.0
	DefaultThreshold = 150.0
	DefaultPhaseStep = 0.02
)

// Stroke is one layer of a connection line. Alpha is multiplied by the
// connection opacity before drawing.
type Stroke struct {
	Color color.RGBA
	Alpha float64
	Width float64
}

// Disc is one layer of a node. Scale multiplies the pulsed node radius.
type Disc struct {
	Color color.RGBA
	Alpha float64
	Scale float64
}

// Palette holds the colour tiers used by Render. Lines are drawn Glow then
// Accent, nodes Body then Halo then Core.
type Palette struct {
	Glow   Stroke
	Accent Stroke
	Body   Disc
	Halo   Disc
	Core   Disc
}

// NeonPalette is the violet/blue/cyan look of the portfolio hero section.
func NeonPalette() Palette {
	violet := color.RGBA{R: 157, G: 0, B: 255, A: 255}
	blue := color.RGBA{R: 0, G: 128, B: 255, A: 255}
	cyan := color.RGBA{R: 0, G: 212, B: 255, A: 255}
	return Palette{
		Glow:   Stroke{Color: violet, Alpha: 0.4, Width: 1.5},
		Accent: Stroke{Color: blue, Alpha: 0.2, Width: 0.8},
		Body:   Disc{Color: blue, Alpha: 0.9, Scale: 1.0},
		Halo:   Disc{Color: violet, Alpha: 0.3, Scale: 1.5},
		Core:   Disc{Color: cyan, Alpha: 1.0, Scale: 0.5},
	}
}

// Config tunes a field. Unusable values (non-positive counts, radii or
// thresholds, negative speeds) are replaced by defaults when the field is
// created.
type Config struct {
	NodeCount int
	// Speed is the width of the per-axis velocity range, centred on zero.
	Speed     float64
	MinRadius float64
	MaxRadius float64
	Threshold float64
	// PhaseStep is the pulse phase advance per frame, in radians.
	PhaseStep float64
	Palette   Palette
}

func DefaultConfig() Config {
	return Config{
		NodeCount: DefaultNodeCount,
		Speed:     DefaultSpeed,
		MinRadius: DefaultMinRadius,
		MaxRadius: DefaultMaxRadius,
		Threshold: DefaultThreshold,
		PhaseStep: DefaultPhaseStep,
		Palette:   NeonPalette(),
	}
}

// normalize fills in defaults for unusable values.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.NodeCount <= 0 {
		c.NodeCount = d.NodeCount
	}
	if c.Speed < 0 {
		c.Speed = d.Speed
	}
	if c.MinRadius <= 0 {
		c.MinRadius = d.MinRadius
	}
	if c.MaxRadius < c.MinRadius {
		c.MaxRadius = c.MinRadius
	}
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.PhaseStep < 0 {
		c.PhaseStep = d.PhaseStep
	}
	if c.Palette == (Palette{}) {
		c.Palette = d.Palette
	}
	return c
}
