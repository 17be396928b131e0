// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulator configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Emitter   EmitterConfig   `yaml:"emitter"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the background grid dimensions in cells. Fixed for
// the lifetime of a simulation; changing them means starting a new one.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds the time step and gravity acceleration.
type PhysicsConfig struct {
	DT      float64    `yaml:"dt"`
	Gravity Vec2Config `yaml:"gravity"`
}

// Vec2Config is a 2D vector in YAML.
type Vec2Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EmitterConfig describes the initial particle block: a cols x rows
// lattice from origin with fixed spacing.
type EmitterConfig struct {
	Origin         Vec2Config `yaml:"origin"`
	Cols           int        `yaml:"cols"`
	Rows           int        `yaml:"rows"`
	Spacing        float64    `yaml:"spacing"`
	Velocity       Vec2Config `yaml:"velocity"`
	VelocityJitter float64    `yaml:"velocity_jitter"` // uniform jitter width per axis (0 disables)
	Mass           float64    `yaml:"mass"`
}

// ViewerConfig holds rendering parameters for the graphical mode.
type ViewerConfig struct {
	PointSize      float64 `yaml:"point_size"`
	StepsPerFrame  int     `yaml:"steps_per_frame"`
	ColorBySpeed   bool    `yaml:"color_by_speed"`
	SpeedColorFull float64 `yaml:"speed_color_full"` // speed mapped to the hottest color
}

// TelemetryConfig holds performance telemetry parameters.
type TelemetryConfig struct {
	PerfWindow       int `yaml:"perf_window"`        // steps averaged per stats window
	LogIntervalSteps int `yaml:"log_interval_steps"` // steps between stats log lines (0 disables)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32 // Physics.DT as float32
	GravityX32  float32
	GravityY32  float32
	WorldW32    float32 // Grid.Width as float32 (world units = cells)
	WorldH32    float32
	PointSize32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Viewer.StepsPerFrame == 0 {
		c.Viewer.StepsPerFrame = 1
	}
	if c.Telemetry.PerfWindow == 0 {
		c.Telemetry.PerfWindow = 120
	}

	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.GravityX32 = float32(c.Physics.Gravity.X)
	c.Derived.GravityY32 = float32(c.Physics.Gravity.Y)
	c.Derived.WorldW32 = float32(c.Grid.Width)
	c.Derived.WorldH32 = float32(c.Grid.Height)
	c.Derived.PointSize32 = float32(c.Viewer.PointSize)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
