package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/neuralfield/internal/field"
)

// Theme pairs UI colours with the palette the field is drawn in.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Palette    field.Palette
}

func palette(glow, accent, body, halo, core color.RGBA) field.Palette {
	p := field.NeonPalette()
	p.Glow.Color = glow
	p.Accent.Color = accent
	p.Body.Color = body
	p.Halo.Color = halo
	p.Core.Color = core
	return p
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// Available themes
var (
	ThemeNeon = Theme{
		Name:       "neon",
		Primary:    lipgloss.Color("#9d00ff"), // Violet
		Secondary:  lipgloss.Color("#0080ff"), // Blue
		Accent:     lipgloss.Color("#00d4ff"), // Cyan
		Background: lipgloss.Color("#0a0a14"),
		Text:       lipgloss.Color("#e8e8ff"),
		Muted:      lipgloss.Color("#666688"),
		Palette:    field.NeonPalette(),
	}

	ThemeDark = Theme{
		Name:       "dark",
		Primary:    lipgloss.Color("#7f5af0"),
		Secondary:  lipgloss.Color("#2cb67d"),
		Accent:     lipgloss.Color("#72f1b8"),
		Background: lipgloss.Color("#16161a"),
		Text:       lipgloss.Color("#fffffe"),
		Muted:      lipgloss.Color("#72757e"),
		Palette:    palette(rgb(127, 90, 240), rgb(44, 182, 125), rgb(44, 182, 125), rgb(127, 90, 240), rgb(114, 241, 184)),
	}

	ThemeLight = Theme{
		Name:       "light",
		Primary:    lipgloss.Color("#4f46e5"),
		Secondary:  lipgloss.Color("#0ea5e9"),
		Accent:     lipgloss.Color("#0369a1"),
		Background: lipgloss.Color("#f8fafc"),
		Text:       lipgloss.Color("#0f172a"),
		Muted:      lipgloss.Color("#94a3b8"),
		Palette:    palette(rgb(79, 70, 229), rgb(14, 165, 233), rgb(14, 165, 233), rgb(79, 70, 229), rgb(3, 105, 161)),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"), // Ocean blue
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Palette:    palette(rgb(0, 119, 190), rgb(0, 168, 204), rgb(0, 168, 204), rgb(0, 119, 190), rgb(255, 215, 0)),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Palette:    palette(rgb(255, 107, 107), rgb(254, 202, 87), rgb(254, 202, 87), rgb(255, 107, 107), rgb(255, 159, 243)),
	}

	// All available themes
	Themes = []Theme{
		ThemeNeon,
		ThemeDark,
		ThemeLight,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to neon.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
