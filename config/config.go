// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Eye        EyeConfig        `yaml:"eye"`
	Brain      BrainConfig      `yaml:"brain"`
	Genetic    GeneticConfig    `yaml:"genetic"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Screen     ScreenConfig     `yaml:"screen"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds population sizes. The world itself is the unit torus.
type WorldConfig struct {
	Animals int `yaml:"animals"`
	Foods   int `yaml:"foods"`
}

// SimulationConfig holds the per-step physics and generation parameters.
type SimulationConfig struct {
	GenerationLength int     `yaml:"generation_length"`  // steps before evolution
	SpeedMin         float64 `yaml:"speed_min"`          // keeps animals moving
	SpeedMax         float64 `yaml:"speed_max"`
	SpeedAccel       float64 `yaml:"speed_accel"`        // max speed change per step
	RotationAccelDeg float64 `yaml:"rotation_accel_deg"` // max heading change per step
	EatRadius        float64 `yaml:"eat_radius"`
}

// EyeConfig holds vision parameters shared by every animal.
type EyeConfig struct {
	FOVRange    float64 `yaml:"fov_range"`
	FOVAngleDeg float64 `yaml:"fov_angle_deg"`
	Cells       int     `yaml:"cells"`
}

// BrainConfig holds network shape. Inputs come from eye cells, outputs are fixed at 2.
type BrainConfig struct {
	HiddenLayers []int `yaml:"hidden_layers"` // empty = one layer of 2*cells
}

// GeneticConfig holds evolution strategy parameters.
type GeneticConfig struct {
	Selection      string  `yaml:"selection"` // roulette or tournament
	TournamentSize int     `yaml:"tournament_size"`
	MutationChance float64 `yaml:"mutation_chance"`
	MutationCoeff  float64 `yaml:"mutation_coeff"`
}

// ParallelConfig controls the brain-phase worker pool.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // min animals before going parallel, 0 = never
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // steps averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	RotationAccel float64 // Simulation.RotationAccelDeg in radians
	FOVAngle      float64 // Eye.FOVAngleDeg in radians
	HiddenLayers  []int   // Brain.HiddenLayers, or [2*cells] when empty
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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

	cfg.ComputeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ComputeDerived recalculates derived values. Call it after editing fields in code.
func (c *Config) ComputeDerived() {
	c.Derived.RotationAccel = c.Simulation.RotationAccelDeg * math.Pi / 180
	c.Derived.FOVAngle = c.Eye.FOVAngleDeg * math.Pi / 180

	if len(c.Brain.HiddenLayers) > 0 {
		c.Derived.HiddenLayers = append([]int(nil), c.Brain.HiddenLayers...)
	} else {
		c.Derived.HiddenLayers = []int{2 * c.Eye.Cells}
	}
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	s := c.Simulation
	switch {
	case c.World.Animals < 1:
		return fmt.Errorf("%w: world.animals must be >= 1, got %d", ErrInvalid, c.World.Animals)
	case c.World.Foods < 0:
		return fmt.Errorf("%w: world.foods must be >= 0, got %d", ErrInvalid, c.World.Foods)
	case s.GenerationLength < 1:
		return fmt.Errorf("%w: simulation.generation_length must be >= 1, got %d", ErrInvalid, s.GenerationLength)
	case s.SpeedMin < 0 || s.SpeedMin > s.SpeedMax:
		return fmt.Errorf("%w: need 0 <= speed_min <= speed_max, got %v and %v", ErrInvalid, s.SpeedMin, s.SpeedMax)
	case s.SpeedAccel < 0 || s.RotationAccelDeg < 0:
		return fmt.Errorf("%w: acceleration bounds must be >= 0", ErrInvalid)
	case s.EatRadius < 0:
		return fmt.Errorf("%w: simulation.eat_radius must be >= 0, got %v", ErrInvalid, s.EatRadius)
	case c.Eye.Cells < 1:
		return fmt.Errorf("%w: eye.cells must be >= 1, got %d", ErrInvalid, c.Eye.Cells)
	case c.Eye.FOVRange <= 0:
		return fmt.Errorf("%w: eye.fov_range must be > 0, got %v", ErrInvalid, c.Eye.FOVRange)
	case c.Eye.FOVAngleDeg <= 0 || c.Eye.FOVAngleDeg > 360:
		return fmt.Errorf("%w: eye.fov_angle_deg must be in (0, 360], got %v", ErrInvalid, c.Eye.FOVAngleDeg)
	case c.Genetic.MutationChance < 0 || c.Genetic.MutationChance > 1:
		return fmt.Errorf("%w: genetic.mutation_chance must be in [0, 1], got %v", ErrInvalid, c.Genetic.MutationChance)
	case c.Genetic.MutationCoeff < 0:
		return fmt.Errorf("%w: genetic.mutation_coeff must be >= 0, got %v", ErrInvalid, c.Genetic.MutationCoeff)
	}
	for i, n := range c.Derived.HiddenLayers {
		if n < 1 {
			return fmt.Errorf("%w: brain.hidden_layers[%d] must be >= 1, got %d", ErrInvalid, i, n)
		}
	}
	return nil
}

// Clone returns a deep copy, safe to mutate independently.
func (c *Config) Clone() *Config {
	out := *c
	out.Brain.HiddenLayers = append([]int(nil), c.Brain.HiddenLayers...)
	out.Derived.HiddenLayers = append([]int(nil), c.Derived.HiddenLayers...)
	return &out
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
