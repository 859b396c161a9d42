// Package world owns the box2d world and the mapping from stable string IDs
// to physics bodies. All body construction and destruction goes through the
// Manager; the engine itself does the simulating.
package world

import (
	"errors"
	"image/color"
	"math/rand"

	"github.com/ByteArena/box2d"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/scene"
)

var (
	// ErrNoShape indicates a body definition without usable geometry.
	ErrNoShape = errors.New("world: body definition has no shape")

	// ErrBadPolygon indicates a polygon with too few or too many vertices
	// for the engine.
	ErrBadPolygon = errors.New("world: polygon must have 3 to 8 vertices")
)

// tag travels in box2d user data and carries everything the renderer and the
// drag handler need to know about a body.
type tag struct {
	id        string
	color     color.RGBA
	draggable bool
}

// Manager wraps a box2d world and tracks bodies by application ID.
type Manager struct {
	world  box2d.B2World
	ground *box2d.B2Body
	bodies map[string]*box2d.B2Body
	order  []string
	cfg    *config.Config
	rng    *rand.Rand
	log    *zap.Logger
	spawns int
}

// New creates an empty physics world with the configured gravity. The physics
// plane follows the screen: origin top-left, Y grows downward, so positive
// gravity pulls down.
func New(cfg *config.Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	m := &Manager{
		world:  box2d.MakeB2World(box2d.MakeB2Vec2(0, cfg.Gravity)),
		bodies: make(map[string]*box2d.B2Body),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		log:    log,
	}

	// Bodiless static anchor for mouse joints.
	bd := box2d.MakeB2BodyDef()
	m.ground = m.world.CreateBody(&bd)

	return m
}

// Create builds a body from def and registers it. An empty ID gets a
// generated one. Creating over an existing ID replaces the old body, with a
// warning, rather than failing.
func (m *Manager) Create(def Def) (string, error) {
	id := def.ID
	if id == "" {
		id = uuid.NewString()
	}

	if _, exists := m.bodies[id]; exists {
		m.log.Warn("replacing body with duplicate id", zap.String("id", id))
		m.Remove(id)
	}

	bd := box2d.MakeB2BodyDef()
	if def.Static {
		bd.Type = box2d.B2BodyType.B2_staticBody
	} else {
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	}
	bd.Position.Set(def.X, def.Y)
	bd.Angle = def.Angle

	fd := box2d.MakeB2FixtureDef()
	fd.Density = def.Density
	fd.Friction = def.Friction
	fd.Restitution = def.Restitution

	switch s := def.Shape.(type) {
	case scene.Circle:
		circle := box2d.MakeB2CircleShape()
		circle.M_radius = s.Radius
		fd.Shape = &circle
	case scene.Polygon:
		if len(s.Verts) < 3 || len(s.Verts) > box2d.B2_maxPolygonVertices {
			return "", ErrBadPolygon
		}
		verts := make([]box2d.B2Vec2, len(s.Verts))
		for i, v := range s.Verts {
			verts[i] = box2d.MakeB2Vec2(v.X, v.Y)
		}
		poly := box2d.MakeB2PolygonShape()
		poly.Set(verts, len(verts))
		fd.Shape = &poly
	default:
		return "", ErrNoShape
	}

	body := m.world.CreateBody(&bd)
	body.CreateFixtureFromDef(&fd)
	body.SetUserData(&tag{id: id, color: def.Color, draggable: def.Draggable})

	m.bodies[id] = body
	m.order = append(m.order, id)
	return id, nil
}

// Remove destroys the body with the given ID. Removing an unknown ID is a
// no-op reported by the return value, not an error.
func (m *Manager) Remove(id string) bool {
	body, ok := m.bodies[id]
	if !ok {
		return false
	}
	m.world.DestroyBody(body)
	delete(m.bodies, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Lookup returns the body registered under id.
func (m *Manager) Lookup(id string) (*box2d.B2Body, bool) {
	body, ok := m.bodies[id]
	return body, ok
}

// Clear removes every managed body. The mouse-joint anchor survives.
func (m *Manager) Clear() {
	for id, body := range m.bodies {
		m.world.DestroyBody(body)
		delete(m.bodies, id)
	}
	m.order = m.order[:0]
}

// Count reports the number of managed bodies.
func (m *Manager) Count() int {
	return len(m.bodies)
}

// Step advances the simulation one fixed tick.
func (m *Manager) Step(dt float64) {
	m.world.Step(dt, m.cfg.VelIters, m.cfg.PosIters)
}

// Ground returns the static anchor body used by mouse joints.
func (m *Manager) Ground() *box2d.B2Body {
	return m.ground
}

// World exposes the underlying engine for joint creation.
func (m *Manager) World() *box2d.B2World {
	return &m.world
}
