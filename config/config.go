// Package config provides configuration loading and access for the renderer.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ConfigError reports an invalid configuration value. Config validation and
// grid layout return it; it is never retried since the inputs are static.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Config holds all renderer configuration parameters.
type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Grid      GridConfig      `yaml:"grid"`
	Noise     NoiseConfig     `yaml:"noise"`
	Particles ParticlesConfig `yaml:"particles"`
	Render    RenderConfig    `yaml:"render"`
	Animation AnimationConfig `yaml:"animation"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// CanvasConfig holds output canvas dimensions and preview frame rate.
type CanvasConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds grid layout parameters.
type GridConfig struct {
	N        int     `yaml:"n"`       // n×n shortcut; 0 = use rows/columns
	Rows     int     `yaml:"rows"`
	Columns  int     `yaml:"columns"`
	Margin   float64 `yaml:"margin"`  // canvas units from each edge
	XBounds  float64 `yaml:"xbounds"` // half-extent of each cell's x range
	YBounds  float64 `yaml:"ybounds"` // half-extent of each cell's y range
	Shape    string  `yaml:"shape"`   // rectangle | circle
	LinesMin int     `yaml:"lines_min"`
	LinesMax int     `yaml:"lines_max"`
}

// NoiseConfig holds noise field parameters.
type NoiseConfig struct {
	Kind       string  `yaml:"kind"`       // perlin | opensimplex
	Seed       int64   `yaml:"seed"`       // 0 = CLI/time seed
	Scale      float64 `yaml:"scale"`      // position → noise-space frequency
	TimeScale  float64 `yaml:"time_scale"` // tick → noise z speed
	Octaves    int     `yaml:"octaves"`    // FBM octaves (1 = raw field)
	Lacunarity float64 `yaml:"lacunarity"` // frequency multiplier per octave
	Gain       float64 `yaml:"gain"`       // amplitude multiplier per octave
}

// ParticlesConfig holds particle motion parameters.
type ParticlesConfig struct {
	Steering   string  `yaml:"steering"`    // heading | drift
	Step       float64 `yaml:"step"`        // advance distance per frame (heading mode)
	AngleScale float64 `yaml:"angle_scale"` // radians per unit noise (0 = 2π)
	DriftSpeed float64 `yaml:"drift_speed"` // initial velocity half-range (drift mode)
	Edge       string  `yaml:"edge"`        // wrap | clamp | reflect
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	Fade      float64 `yaml:"fade"`       // canvas blend toward background per frame
	LineAlpha float64 `yaml:"line_alpha"` // segment opacity
}

// AnimationConfig holds headless export parameters.
type AnimationConfig struct {
	Frames int `yaml:"frames"`
	Delay  int `yaml:"delay"` // per-frame delay in 10ms units
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // frames per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Width64  float64 // Canvas.Width as float64
	Height64 float64 // Canvas.Height as float64
	Rows     int     // effective rows after n shortcut
	Columns  int     // effective columns after n shortcut
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Width64 = float64(c.Canvas.Width)
	c.Derived.Height64 = float64(c.Canvas.Height)

	// n shortcut expands to a square grid
	if c.Grid.N > 0 {
		c.Derived.Rows = c.Grid.N
		c.Derived.Columns = c.Grid.N
	} else {
		c.Derived.Rows = c.Grid.Rows
		c.Derived.Columns = c.Grid.Columns
	}

	if c.Particles.AngleScale == 0 {
		c.Particles.AngleScale = 2 * 3.141592653589793
	}
}

// Validate checks the loaded configuration for degenerate values.
// Layout-level constraints (rows/columns/margin) are re-checked by
// grid.Layout so programmatic callers get the same errors.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return &ConfigError{Field: "canvas", Reason: "width and height must be positive"}
	}
	if c.Derived.Rows <= 0 {
		return &ConfigError{Field: "grid.rows", Reason: "must be positive (or set grid.n)"}
	}
	if c.Derived.Columns <= 0 {
		return &ConfigError{Field: "grid.columns", Reason: "must be positive (or set grid.n)"}
	}
	if m := minInt(c.Canvas.Width, c.Canvas.Height); c.Grid.Margin*2 >= float64(m) {
		return &ConfigError{Field: "grid.margin", Reason: "exceeds half the canvas dimension"}
	}
	if c.Grid.LinesMin <= 0 || c.Grid.LinesMax < c.Grid.LinesMin {
		return &ConfigError{Field: "grid.lines_min", Reason: "need 0 < lines_min <= lines_max"}
	}
	switch c.Grid.Shape {
	case "rectangle", "circle":
	default:
		return &ConfigError{Field: "grid.shape", Reason: fmt.Sprintf("unknown shape %q", c.Grid.Shape)}
	}
	switch c.Noise.Kind {
	case "perlin", "opensimplex":
	default:
		return &ConfigError{Field: "noise.kind", Reason: fmt.Sprintf("unknown noise kind %q", c.Noise.Kind)}
	}
	if c.Noise.Octaves <= 0 {
		return &ConfigError{Field: "noise.octaves", Reason: "must be positive"}
	}
	if c.Noise.Octaves > 1 {
		// A non-positive gain can cancel the FBM amplitude normalizer.
		if !finite(c.Noise.Gain) || c.Noise.Gain <= 0 {
			return &ConfigError{Field: "noise.gain", Reason: "must be positive and finite"}
		}
		if !finite(c.Noise.Lacunarity) || c.Noise.Lacunarity <= 0 {
			return &ConfigError{Field: "noise.lacunarity", Reason: "must be positive and finite"}
		}
	}
	switch c.Particles.Steering {
	case "heading", "drift":
	default:
		return &ConfigError{Field: "particles.steering", Reason: fmt.Sprintf("unknown steering %q", c.Particles.Steering)}
	}
	switch c.Particles.Edge {
	case "wrap", "clamp", "reflect":
	default:
		return &ConfigError{Field: "particles.edge", Reason: fmt.Sprintf("unknown edge policy %q", c.Particles.Edge)}
	}
	if c.Particles.DriftSpeed < 0 {
		return &ConfigError{Field: "particles.drift_speed", Reason: "must be non-negative"}
	}
	if c.Render.Fade < 0 || c.Render.Fade > 1 {
		return &ConfigError{Field: "render.fade", Reason: "must be in [0, 1]"}
	}
	if c.Animation.Frames <= 0 {
		return &ConfigError{Field: "animation.frames", Reason: "must be positive"}
	}
	return nil
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

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
