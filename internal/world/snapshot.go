package world

import (
	"github.com/ByteArena/box2d"

	"github.com/san-kum/grainlab/internal/scene"
)

// Snapshots captures every managed body's render state in creation order, so
// later bodies draw (and hit-test) on top of earlier ones.
func (m *Manager) Snapshots() []scene.Snapshot {
	snaps := make([]scene.Snapshot, 0, len(m.order))

	for _, id := range m.order {
		body := m.bodies[id]
		t := body.GetUserData().(*tag)
		pos := body.GetPosition()

		snap := scene.Snapshot{
			ID:        id,
			Pos:       scene.Vec2{X: pos.X, Y: pos.Y},
			Angle:     body.GetAngle(),
			Color:     t.color,
			Draggable: t.draggable,
		}

		fixture := body.GetFixtureList()
		if fixture == nil {
			continue
		}
		switch s := fixture.GetShape().(type) {
		case *box2d.B2CircleShape:
			snap.Shape = scene.Circle{Radius: s.M_radius}
		case *box2d.B2PolygonShape:
			verts := make([]scene.Vec2, s.M_count)
			for i := 0; i < s.M_count; i++ {
				verts[i] = scene.Vec2{X: s.M_vertices[i].X, Y: s.M_vertices[i].Y}
			}
			snap.Shape = scene.Polygon{Verts: verts}
		default:
			continue
		}

		snaps = append(snaps, snap)
	}

	return snaps
}

// HitTest returns the topmost draggable body containing the given physics
// point. Topmost means last created. Non-draggable bodies never match.
func (m *Manager) HitTest(p scene.Vec2) (string, bool) {
	pt := box2d.MakeB2Vec2(p.X, p.Y)

	for i := len(m.order) - 1; i >= 0; i-- {
		id := m.order[i]
		body := m.bodies[id]
		if !body.GetUserData().(*tag).draggable {
			continue
		}
		for f := body.GetFixtureList(); f != nil; f = f.GetNext() {
			if f.TestPoint(pt) {
				return id, true
			}
		}
	}
	return "", false
}

// Stats summarizes the scene for status displays.
type Stats struct {
	Bodies        int
	KineticEnergy float64
}

func (m *Manager) Stats() Stats {
	st := Stats{Bodies: len(m.bodies)}
	for _, body := range m.bodies {
		mass := body.GetMass()
		if mass == 0 {
			continue
		}
		v := body.GetLinearVelocity()
		w := body.GetAngularVelocity()
		st.KineticEnergy += 0.5*mass*(v.X*v.X+v.Y*v.Y) + 0.5*body.GetInertia()*w*w
	}
	return st
}
