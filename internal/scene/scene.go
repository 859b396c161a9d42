// Package scene keeps a set of renderable meshes synchronized with the
// physics world's per-frame body snapshots. The renderer back-end supplies
// the mesh implementation; the cache owns mesh lifetimes.
package scene

import (
	"image/color"

	"go.uber.org/zap"
)

// Vec2 is a point in physics space (origin top-left, Y down).
type Vec2 struct {
	X, Y float64
}

// Vec3 is a point in render space.
type Vec3 struct {
	X, Y, Z float64
}

// Shape describes a body's fixture geometry for rendering.
type Shape interface {
	shape()
}

// Circle is a disk of the given radius centered on the body origin.
type Circle struct {
	Radius float64
}

// Polygon is a convex hull given in body-local coordinates.
type Polygon struct {
	Verts []Vec2
}

func (Circle) shape()  {}
func (Polygon) shape() {}

// Snapshot is one body's render-relevant state for the current frame.
type Snapshot struct {
	ID        string
	Pos       Vec2
	Angle     float64
	Shape     Shape
	Color     color.RGBA
	Draggable bool
}

// Mesh is a renderable owned by the cache. SetTransform receives render-space
// position and rotation; Dispose releases any geometry or GPU buffers.
type Mesh interface {
	SetTransform(pos Vec3, angle float64)
	Dispose()
}

// Factory builds a mesh for a snapshot. A build error skips that body for the
// frame; the cache will try again next frame.
type Factory interface {
	Build(s Snapshot) (Mesh, error)
}

// Cache maps body IDs to owned meshes and reconciles them against the live
// snapshot list each frame.
type Cache struct {
	factory Factory
	proj    Projection
	meshes  map[string]Mesh
	log     *zap.Logger
}

func NewCache(factory Factory, proj Projection, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		factory: factory,
		proj:    proj,
		meshes:  make(map[string]Mesh),
		log:     log,
	}
}

// Sync reconciles the cache with snaps: builds meshes for new bodies, writes
// every live body's transform, and disposes meshes whose bodies are gone.
// A failed build is logged and skipped without aborting the rest of the frame.
func (c *Cache) Sync(snaps []Snapshot) {
	live := make(map[string]struct{}, len(snaps))

	for _, s := range snaps {
		if _, ok := c.meshes[s.ID]; !ok {
			mesh, err := c.factory.Build(s)
			if err != nil {
				c.log.Warn("mesh build failed, skipping body this frame",
					zap.String("id", s.ID), zap.Error(err))
				continue
			}
			c.meshes[s.ID] = mesh
		}
		live[s.ID] = struct{}{}
		c.meshes[s.ID].SetTransform(c.proj.ToRender(s.Pos), c.proj.RenderAngle(s.Angle))
	}

	for id, mesh := range c.meshes {
		if _, ok := live[id]; !ok {
			mesh.Dispose()
			delete(c.meshes, id)
		}
	}
}

// SetProjection changes the coordinate convention for subsequent syncs.
// Existing meshes keep their geometry; their transforms update on the next
// Sync call.
func (c *Cache) SetProjection(p Projection) {
	c.proj = p
}

// Each calls fn for every cached mesh. Draw order is not defined here; a
// back-end that needs z-order should draw from the snapshot list instead.
func (c *Cache) Each(fn func(Mesh)) {
	for _, m := range c.meshes {
		fn(m)
	}
}

// Len reports the number of cached meshes.
func (c *Cache) Len() int {
	return len(c.meshes)
}

// Clear disposes every cached mesh. Called on renderer teardown.
func (c *Cache) Clear() {
	for id, mesh := range c.meshes {
		mesh.Dispose()
		delete(c.meshes, id)
	}
}
