package config

// Presets are the built-in scenarios, keyed by name.
var Presets = map[string]*Config{
	"merge": {
		Name: "merge", Dt: DefaultDt, Ticks: 600, Seed: 7,
		Bodies: []BodyConfig{
			{Kind: "conductor", X: 0, Y: 0, Radius: 50, Offset: 4},
			{Kind: "conductor", X: 100, Y: 0, Radius: 50, Offset: -2},
		},
	},
	"grounded": {
		Name: "grounded", Dt: DefaultDt, Ticks: 300, Seed: 7,
		Bodies: []BodyConfig{
			{Kind: "conductor", X: 0, Y: 0, Radius: 50, Offset: 12, Grounded: true},
		},
	},
	"induction": {
		Name: "induction", Dt: DefaultDt, Ticks: 900, Seed: 7,
		Bodies: []BodyConfig{
			{Kind: "conductor", X: 0, Y: 0, Radius: 50},
			{
				Kind: "insulator", X: 140, Y: 0, Radius: 40,
				StaticPos: [][2]float64{{-10, 0}, {0, 10}, {0, -10}, {10, 0}, {0, 0}},
			},
		},
	},
	"lightning-rod": {
		Name: "lightning-rod", Dt: DefaultDt, Ticks: 900, Seed: 7,
		Bodies: []BodyConfig{
			{Kind: "conductor", X: 0, Y: 0, Radius: 60, Grounded: true},
			{
				Kind: "insulator", X: 200, Y: 0, Radius: 50,
				StaticNeg: [][2]float64{{-15, 0}, {0, 15}, {15, 0}, {0, -15}, {0, 0}, {8, 8}},
			},
		},
	},
	"cascade": {
		Name: "cascade", Dt: DefaultDt, Ticks: 600, Seed: 7,
		Bodies: []BodyConfig{
			{Kind: "conductor", X: 0, Y: 0, Radius: 80, Offset: 24},
			{Kind: "conductor", X: 130, Y: 0, Radius: 50, Offset: 0},
			{Kind: "conductor", X: 220, Y: 0, Radius: 40, Offset: -6},
		},
	},
}

// GetPreset returns the named preset, or nil.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns all preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
