package config

// Presets are named scene setups selectable from the CLI.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"avalanche": {
		Width: 800, Height: 600, Gravity: 1400, Dt: DefaultDt, FPS: 60,
		VelIters: DefaultVelIters, PosIters: DefaultPosIters,
		Renderer: "gui", Projection: "centered",
		Sand:   SandConfig{Count: 500, Radius: 2, DiskRadius: 120, Retries: 300, Friction: 0.9, Density: 0.5},
		Bodies: BodiesConfig{GroundThickness: 24, CrateSize: 50, BallRadius: 28, Friction: 0.5, Restitution: 0.2, Density: 1.0},
		Colors: DefaultConfig().Colors,
	},
	"sparse": {
		Width: 640, Height: 480, Gravity: 600, Dt: DefaultDt, FPS: 60,
		VelIters: DefaultVelIters, PosIters: DefaultPosIters,
		Renderer: "gui", Projection: "centered",
		Sand:   SandConfig{Count: 60, Radius: 4, DiskRadius: 100, Retries: 300, Friction: 0.7, Density: 0.5},
		Bodies: BodiesConfig{GroundThickness: 20, CrateSize: 40, BallRadius: 24, Friction: 0.4, Restitution: 0.4, Density: 1.0},
		Colors: DefaultConfig().Colors,
	},
	"bouncy": {
		Width: 640, Height: 480, Gravity: 980, Dt: DefaultDt, FPS: 60,
		VelIters: DefaultVelIters, PosIters: DefaultPosIters,
		Renderer: "gui", Projection: "centered",
		Sand:   SandConfig{Count: 150, Radius: 3, DiskRadius: 80, Retries: 300, Friction: 0.2, Density: 0.4},
		Bodies: BodiesConfig{GroundThickness: 20, CrateSize: 36, BallRadius: 30, Friction: 0.1, Restitution: 0.9, Density: 0.8},
		Colors: DefaultConfig().Colors,
	},
	"tui": {
		Width: 320, Height: 200, Gravity: 980, Dt: DefaultDt, FPS: 30,
		VelIters: DefaultVelIters, PosIters: DefaultPosIters,
		Renderer: "tui", Projection: "screen",
		Sand:   SandConfig{Count: 80, Radius: 3, DiskRadius: 50, Retries: 300, Friction: 0.8, Density: 0.5},
		Bodies: BodiesConfig{GroundThickness: 12, CrateSize: 28, BallRadius: 16, Friction: 0.4, Restitution: 0.3, Density: 1.0},
		Colors: DefaultConfig().Colors,
	},
}

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
	return names
}
