package world

import (
	"fmt"
	"image/color"

	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/scene"
)

// Def describes a body to create. Positions are physics-plane pixels.
type Def struct {
	ID          string
	X, Y        float64
	Angle       float64
	Shape       scene.Shape
	Static      bool
	Density     float64
	Friction    float64
	Restitution float64
	Color       color.RGBA
	Draggable   bool
}

// Box builds a rectangle polygon centered on the body origin.
func Box(w, h float64) scene.Polygon {
	hw, hh := w/2, h/2
	return scene.Polygon{Verts: []scene.Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}}
}

// SetupScene populates the demo scene: a ground slab, side walls, two crates
// and a ball. Static bodies are not draggable.
func (m *Manager) SetupScene() error {
	cfg := m.cfg
	colors := cfg.Colors

	statics := []Def{
		{
			ID: "ground",
			X:  cfg.Width / 2, Y: cfg.Height - cfg.Bodies.GroundThickness/2,
			Shape:  Box(cfg.Width, cfg.Bodies.GroundThickness),
			Static: true, Friction: cfg.Bodies.Friction,
			Color: config.ParseColor(colors.Ground),
		},
		{
			ID: "wall-left",
			X:  cfg.Bodies.GroundThickness / 2, Y: cfg.Height / 2,
			Shape:  Box(cfg.Bodies.GroundThickness, cfg.Height),
			Static: true, Friction: cfg.Bodies.Friction,
			Color: config.ParseColor(colors.Ground),
		},
		{
			ID: "wall-right",
			X:  cfg.Width - cfg.Bodies.GroundThickness/2, Y: cfg.Height / 2,
			Shape:  Box(cfg.Bodies.GroundThickness, cfg.Height),
			Static: true, Friction: cfg.Bodies.Friction,
			Color: config.ParseColor(colors.Ground),
		},
	}

	dynamics := []Def{
		{
			ID: "crate-1",
			X:  cfg.Width * 0.3, Y: cfg.Height * 0.5,
			Shape:    Box(cfg.Bodies.CrateSize, cfg.Bodies.CrateSize),
			Density:  cfg.Bodies.Density,
			Friction: cfg.Bodies.Friction, Restitution: cfg.Bodies.Restitution,
			Color: config.ParseColor(colors.Crate), Draggable: true,
		},
		{
			ID: "crate-2",
			X:  cfg.Width * 0.7, Y: cfg.Height * 0.4,
			Angle:    0.4,
			Shape:    Box(cfg.Bodies.CrateSize, cfg.Bodies.CrateSize),
			Density:  cfg.Bodies.Density,
			Friction: cfg.Bodies.Friction, Restitution: cfg.Bodies.Restitution,
			Color: config.ParseColor(colors.Crate), Draggable: true,
		},
		{
			ID: "ball",
			X:  cfg.Width * 0.5, Y: cfg.Height * 0.3,
			Shape:    scene.Circle{Radius: cfg.Bodies.BallRadius},
			Density:  cfg.Bodies.Density,
			Friction: cfg.Bodies.Friction, Restitution: cfg.Bodies.Restitution,
			Color: config.ParseColor(colors.Ball), Draggable: true,
		},
	}

	for _, def := range append(statics, dynamics...) {
		if _, err := m.Create(def); err != nil {
			return fmt.Errorf("setup scene: body %s: %w", def.ID, err)
		}
	}
	return nil
}
