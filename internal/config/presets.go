package config

import (
	"math"
	"sort"

	"github.com/san-kum/dpend/internal/pendulum"
)

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"gentle": {
		Name: "gentle", Gravity: pendulum.DefaultGravity, Dt: 0.01, Frames: 3000, TraceCapacity: 500,
		Arm1: ArmConfig{Mass: 1, Length: 1, Angle: 0.3},
		Arm2: ArmConfig{Mass: 1, Length: 1, Angle: 0.3},
	},
	"symmetric": {
		Name: "symmetric", Gravity: pendulum.DefaultGravity, Dt: 0.005, Frames: 6000, TraceCapacity: 500,
		Arm1: ArmConfig{Mass: 1, Length: 1, Angle: 1.5},
		Arm2: ArmConfig{Mass: 1, Length: 1, Angle: 1.5},
	},
	"chaos": {
		Name: "chaos", Gravity: pendulum.DefaultGravity, Dt: 0.005, Frames: 12000, TraceCapacity: 500,
		Arm1: ArmConfig{Mass: 1, Length: 1, Angle: 3.0},
		Arm2: ArmConfig{Mass: 1, Length: 1, Angle: 3.0},
	},
	"spinning": {
		Name: "spinning", Gravity: pendulum.DefaultGravity, Dt: 0.005, Frames: 6000, TraceCapacity: 500,
		Arm1: ArmConfig{Mass: 2, Length: 1, Angle: 0, AngularVelocity: 8},
		Arm2: ArmConfig{Mass: 1, Length: 1, Angle: math.Pi / 2},
	},
}

// GetPreset returns a copy of the named preset, or nil.
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
