package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
	"github.com/san-kum/dpend/internal/trace"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames = 500
)

var ErrInvalidFrames = errors.New("config: frames must be positive")

type Config struct {
	Name          string    `yaml:"name" json:"name"`
	Arm1          ArmConfig `yaml:"arm1" json:"arm1"`
	Arm2          ArmConfig `yaml:"arm2" json:"arm2"`
	Gravity       float64   `yaml:"gravity" json:"gravity"`
	Dt            float64   `yaml:"dt" json:"dt"`
	Frames        int       `yaml:"frames" json:"frames"`
	TraceCapacity int       `yaml:"trace_capacity" json:"trace_capacity"`
}

// ArmConfig describes one arm. Angles are in radians from the downward
// vertical.
type ArmConfig struct {
	Mass            float64 `yaml:"mass" json:"mass"`
	Length          float64 `yaml:"length" json:"length"`
	Angle           float64 `yaml:"angle" json:"angle"`
	AngularVelocity float64 `yaml:"angular_velocity" json:"angular_velocity"`
}

func (a ArmConfig) Arm() pendulum.Arm {
	arm := pendulum.NewArm(a.Mass, a.Length, a.Angle)
	arm.AngularVelocity = a.AngularVelocity
	return arm
}

// DefaultConfig is the classic setup: a heavy lower arm released from
// horizontal with the upper arm at 45 degrees.
func DefaultConfig() *Config {
	return &Config{
		Name:          "classic",
		Arm1:          ArmConfig{Mass: 5, Length: 2, Angle: -math.Pi / 2},
		Arm2:          ArmConfig{Mass: 7, Length: 1.5, Angle: -math.Pi / 4},
		Gravity:       pendulum.DefaultGravity,
		Dt:            sim.DefaultDt,
		Frames:        DefaultFrames,
		TraceCapacity: trace.DefaultCapacity,
	}
}

// Load reads a YAML file on top of the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// State builds the validated pendulum state.
func (c *Config) State() (pendulum.State, error) {
	return pendulum.NewWithGravity(c.Arm1.Arm(), c.Arm2.Arm(), c.Gravity)
}

func (c *Config) Validate() error {
	if _, err := c.State(); err != nil {
		return err
	}
	if !sim.ValidDt(c.Dt) {
		return fmt.Errorf("%w, got %v", sim.ErrInvalidDt, c.Dt)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidFrames, c.Frames)
	}
	if c.TraceCapacity < 1 {
		return fmt.Errorf("%w, got %d", trace.ErrInvalidCapacity, c.TraceCapacity)
	}
	return nil
}

func (c *Config) NewSimulator() (*sim.Simulator, error) {
	st, err := c.State()
	if err != nil {
		return nil, err
	}
	return sim.New(st, c.Dt)
}

func (c *Config) NewRecorder() (*trace.Recorder, error) {
	return trace.NewRecorder(c.TraceCapacity)
}
