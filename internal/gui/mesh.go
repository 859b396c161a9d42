package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/grainlab/internal/scene"
)

// meshDepth is the extrusion of the flat 2D shapes into the Z axis, purely
// cosmetic.
const meshDepth = 8

// mesh owns one raylib model. Geometry is uploaded once at build time; only
// the transform changes per frame.
type mesh struct {
	model    rl.Model
	pos      rl.Vector3
	angleDeg float32
	tint     rl.Color
}

func (m *mesh) SetTransform(pos scene.Vec3, angle float64) {
	m.pos = rl.NewVector3(float32(pos.X), float32(pos.Y), float32(pos.Z))
	m.angleDeg = float32(angle * 180 / math.Pi)
}

func (m *mesh) Dispose() {
	rl.UnloadModel(m.model)
}

func (m *mesh) draw() {
	rl.DrawModelEx(m.model, m.pos, rl.NewVector3(0, 0, 1), m.angleDeg, rl.NewVector3(1, 1, 1), m.tint)
}

// factory builds raylib models from body snapshots.
type factory struct{}

func (factory) Build(s scene.Snapshot) (scene.Mesh, error) {
	var gen rl.Mesh
	standUp := false // cylinders and n-gons generate with their axis on Y

	switch shape := s.Shape.(type) {
	case scene.Circle:
		if shape.Radius <= 0 {
			return nil, fmt.Errorf("gui: circle with radius %g", shape.Radius)
		}
		gen = rl.GenMeshCylinder(float32(shape.Radius), meshDepth, 24)
		standUp = true
	case scene.Polygon:
		if len(shape.Verts) < 3 {
			return nil, fmt.Errorf("gui: polygon with %d vertices", len(shape.Verts))
		}
		if w, h, ok := rectExtents(shape.Verts); ok {
			gen = rl.GenMeshCube(float32(w), float32(h), meshDepth)
		} else {
			// Approximate other convex hulls with a regular n-gon of the
			// mean vertex radius.
			gen = rl.GenMeshPoly(int32(len(shape.Verts)), float32(meanRadius(shape.Verts)))
			standUp = true
		}
	default:
		return nil, fmt.Errorf("gui: unsupported shape %T", s.Shape)
	}

	m := &mesh{
		model: rl.LoadModelFromMesh(gen),
		tint:  rl.NewColor(s.Color.R, s.Color.G, s.Color.B, s.Color.A),
	}
	if standUp {
		m.model.Transform = rl.MatrixRotateX(math.Pi / 2)
	}

	return m, nil
}

// rectExtents reports the width and height of an axis-aligned rectangle hull,
// or ok=false when the verts are not one.
func rectExtents(verts []scene.Vec2) (w, h float64, ok bool) {
	if len(verts) != 4 {
		return 0, 0, false
	}
	minX, maxX := verts[0].X, verts[0].X
	minY, maxY := verts[0].Y, verts[0].Y
	for _, v := range verts[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	for _, v := range verts {
		onX := v.X == minX || v.X == maxX
		onY := v.Y == minY || v.Y == maxY
		if !onX || !onY {
			return 0, 0, false
		}
	}
	return maxX - minX, maxY - minY, true
}

func meanRadius(verts []scene.Vec2) float64 {
	var sum float64
	for _, v := range verts {
		sum += math.Hypot(v.X, v.Y)
	}
	return sum / float64(len(verts))
}
