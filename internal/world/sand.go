package world

import (
	"fmt"

	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/scatter"
	"github.com/san-kum/grainlab/internal/scene"
)

// SpawnSand scatters a cluster of sand grains around center and creates a
// circle body per placed grain. The layout is best effort: a crowded disk
// yields fewer grains than asked for, which is fine. Returns the number of
// grains actually created.
func (m *Manager) SpawnSand(cx, cy float64) int {
	sc := m.cfg.Sand
	pts := scatter.Sample(sc.Count, scatter.Point{X: cx, Y: cy}, sc.DiskRadius, sc.Radius, sc.Retries, m.rng)
	palette := config.SandPalette(m.cfg.Colors.SandHue, len(pts))

	m.spawns++
	for i, p := range pts {
		def := Def{
			ID: fmt.Sprintf("sand-%d-%d", m.spawns, i),
			X:  p.X, Y: p.Y,
			Shape:    scene.Circle{Radius: sc.Radius},
			Density:  sc.Density,
			Friction: sc.Friction,
			Color:    palette[i],
		}
		// Grain IDs are unique by construction; Create cannot fail on a circle.
		m.Create(def)
	}

	return len(pts)
}
