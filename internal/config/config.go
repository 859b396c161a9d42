package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 640
	DefaultHeight    = 480
	DefaultGravity   = 980.0
	DefaultDt        = 1.0 / 60.0
	DefaultFPS       = 60
	DefaultSandCount = 200
	DefaultSandR     = 2.0
	DefaultDiskR     = 80.0
	DefaultRetries   = 300
	DefaultVelIters  = 8
	DefaultPosIters  = 3
)

type Config struct {
	Width      float64      `yaml:"width"`
	Height     float64      `yaml:"height"`
	Gravity    float64      `yaml:"gravity"`
	Dt         float64      `yaml:"dt"`
	FPS        int          `yaml:"fps"`
	VelIters   int          `yaml:"vel_iters"`
	PosIters   int          `yaml:"pos_iters"`
	Renderer   string       `yaml:"renderer"`
	Projection string       `yaml:"projection"`
	Seed       int64        `yaml:"seed"`
	Sand       SandConfig   `yaml:"sand"`
	Bodies     BodiesConfig `yaml:"bodies"`
	Colors     ColorConfig  `yaml:"colors"`
}

// SandConfig parameterizes one sand-cluster spawn.
type SandConfig struct {
	Count      int     `yaml:"count"`
	Radius     float64 `yaml:"radius"`
	DiskRadius float64 `yaml:"disk_radius"`
	Retries    int     `yaml:"retries"`
	Friction   float64 `yaml:"friction"`
	Density    float64 `yaml:"density"`
}

// BodiesConfig holds templates for the static and draggable scene bodies.
type BodiesConfig struct {
	GroundThickness float64 `yaml:"ground_thickness"`
	CrateSize       float64 `yaml:"crate_size"`
	BallRadius      float64 `yaml:"ball_radius"`
	Friction        float64 `yaml:"friction"`
	Restitution     float64 `yaml:"restitution"`
	Density         float64 `yaml:"density"`
}

type ColorConfig struct {
	Background string `yaml:"background"`
	Ground     string `yaml:"ground"`
	Crate      string `yaml:"crate"`
	Ball       string `yaml:"ball"`
	SandHue    string `yaml:"sand_hue"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Gravity:    DefaultGravity,
		Dt:         DefaultDt,
		FPS:        DefaultFPS,
		VelIters:   DefaultVelIters,
		PosIters:   DefaultPosIters,
		Renderer:   "gui",
		Projection: "centered",
		Sand: SandConfig{
			Count:      DefaultSandCount,
			Radius:     DefaultSandR,
			DiskRadius: DefaultDiskR,
			Retries:    DefaultRetries,
			Friction:   0.8,
			Density:    0.5,
		},
		Bodies: BodiesConfig{
			GroundThickness: 20,
			CrateSize:       40,
			BallRadius:      24,
			Friction:        0.4,
			Restitution:     0.3,
			Density:         1.0,
		},
		Colors: ColorConfig{
			Background: "#0a0a0a",
			Ground:     "#3c3c3c",
			Crate:      "#b4b4b4",
			Ball:       "#e0e0e0",
			SandHue:    "#d2a864",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: canvas size must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Sand.Radius <= 0 {
		return fmt.Errorf("config: sand radius must be positive, got %g", c.Sand.Radius)
	}
	if c.Sand.DiskRadius < c.Sand.Radius {
		return fmt.Errorf("config: spawn disk radius %g smaller than sand radius %g", c.Sand.DiskRadius, c.Sand.Radius)
	}
	if c.Sand.Retries < 1 {
		return fmt.Errorf("config: retries must be at least 1, got %d", c.Sand.Retries)
	}
	return nil
}

// SpawnCenter is the default drop point for a sand cluster: horizontally
// centered, in the upper quarter of the canvas.
func (c *Config) SpawnCenter() (float64, float64) {
	return c.Width / 2, c.Height / 4
}
