package config

import "sort"

var Presets = map[string]*Config{
	"portfolio": {
		Field: FieldConfig{Nodes: 15, Speed: 0.5, MinRadius: 2, MaxRadius: 5, Threshold: 150, PhaseStep: 0.02},
		Theme: "neon", FPS: 30, Width: 800, Height: 400, Frames: 120,
	},
	"dense": {
		Field: FieldConfig{Nodes: 40, Speed: 0.8, MinRadius: 1, MaxRadius: 3, Threshold: 110, PhaseStep: 0.03},
		Theme: "neon", FPS: 30, Width: 800, Height: 400, Frames: 120,
	},
	"calm": {
		Field: FieldConfig{Nodes: 12, Speed: 0.2, MinRadius: 3, MaxRadius: 6, Threshold: 180, PhaseStep: 0.01},
		Theme: "ocean", FPS: 24, Width: 800, Height: 400, Frames: 120,
	},
	"sparse": {
		Field: FieldConfig{Nodes: 8, Speed: 0.5, MinRadius: 2, MaxRadius: 5, Threshold: 120, PhaseStep: 0.02},
		Theme: "dark", FPS: 30, Width: 600, Height: 300, Frames: 90,
	},
}

// GetPreset returns a copy so callers can modify it freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
