package scene

// Mode selects how physics coordinates map into render space.
type Mode int

const (
	// Centered recenters the canvas on the origin, for a camera looking at
	// the middle of the scene.
	Centered Mode = iota
	// ScreenAnchored keeps the physics origin at the corner and only flips Y.
	ScreenAnchored
)

// Projection converts between the physics plane (origin top-left, Y down)
// and render space (Y up). The Z plane is always zero; the scene is flat.
type Projection struct {
	Mode   Mode
	Width  float64
	Height float64
}

// ToRender maps a physics position into render space.
func (p Projection) ToRender(v Vec2) Vec3 {
	switch p.Mode {
	case ScreenAnchored:
		return Vec3{X: v.X, Y: p.Height - v.Y}
	default:
		return Vec3{X: v.X - p.Width/2, Y: p.Height/2 - v.Y}
	}
}

// RenderAngle converts a physics rotation to a render-space Z rotation. The
// sign flips because the Y axis flips.
func (p Projection) RenderAngle(a float64) float64 {
	return -a
}

// ToPhysics maps a render-space position back onto the physics plane.
// Inverse of ToRender on the XY plane.
func (p Projection) ToPhysics(v Vec3) Vec2 {
	switch p.Mode {
	case ScreenAnchored:
		return Vec2{X: v.X, Y: p.Height - v.Y}
	default:
		return Vec2{X: v.X + p.Width/2, Y: p.Height/2 - v.Y}
	}
}
