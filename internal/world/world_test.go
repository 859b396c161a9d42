package world

import (
	"testing"

	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/scene"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	return New(cfg, nil)
}

func TestCreate_GeneratesID(t *testing.T) {
	m := testManager(t)

	id, err := m.Create(Def{X: 100, Y: 100, Shape: scene.Circle{Radius: 5}, Density: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
	if _, ok := m.Lookup(id); !ok {
		t.Error("created body should be found by Lookup")
	}
}

func TestCreate_ReplaceSemantics(t *testing.T) {
	m := testManager(t)

	if _, err := m.Create(Def{ID: "dup", X: 10, Y: 10, Shape: scene.Circle{Radius: 5}, Density: 1}); err != nil {
		t.Fatal(err)
	}
	first, _ := m.Lookup("dup")

	if _, err := m.Create(Def{ID: "dup", X: 50, Y: 50, Shape: scene.Circle{Radius: 8}, Density: 1}); err != nil {
		t.Fatal(err)
	}

	if m.Count() != 1 {
		t.Errorf("expected 1 body after replacement, got %d", m.Count())
	}
	second, _ := m.Lookup("dup")
	if first == second {
		t.Error("replacement should create a new body")
	}
	if pos := second.GetPosition(); pos.X != 50 {
		t.Errorf("expected replaced body at x=50, got %g", pos.X)
	}
}

func TestCreate_BadShapes(t *testing.T) {
	m := testManager(t)

	if _, err := m.Create(Def{X: 0, Y: 0}); err != ErrNoShape {
		t.Errorf("nil shape: expected ErrNoShape, got %v", err)
	}

	tooFew := scene.Polygon{Verts: []scene.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	if _, err := m.Create(Def{X: 0, Y: 0, Shape: tooFew}); err != ErrBadPolygon {
		t.Errorf("2-gon: expected ErrBadPolygon, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	m := testManager(t)

	m.Create(Def{ID: "a", X: 0, Y: 0, Shape: scene.Circle{Radius: 1}, Density: 1})
	if !m.Remove("a") {
		t.Error("expected removal of existing body to succeed")
	}
	if m.Remove("a") {
		t.Error("expected second removal to report false")
	}
	if m.Remove("never-existed") {
		t.Error("expected removal of unknown id to report false")
	}
}

func TestClear(t *testing.T) {
	m := testManager(t)
	if err := m.SetupScene(); err != nil {
		t.Fatal(err)
	}
	if m.Count() == 0 {
		t.Fatal("scene should have bodies")
	}

	m.Clear()
	if m.Count() != 0 {
		t.Errorf("expected empty world, got %d bodies", m.Count())
	}

	// The world stays usable after Clear.
	if _, err := m.Create(Def{X: 10, Y: 10, Shape: scene.Circle{Radius: 2}, Density: 1}); err != nil {
		t.Errorf("create after clear: %v", err)
	}
}

func TestSnapshots(t *testing.T) {
	m := testManager(t)
	if err := m.SetupScene(); err != nil {
		t.Fatal(err)
	}

	snaps := m.Snapshots()
	if len(snaps) != m.Count() {
		t.Fatalf("expected %d snapshots, got %d", m.Count(), len(snaps))
	}

	kinds := map[string]bool{}
	for _, s := range snaps {
		switch sh := s.Shape.(type) {
		case scene.Circle:
			if sh.Radius <= 0 {
				t.Errorf("%s: circle radius should be positive", s.ID)
			}
			kinds["circle"] = true
		case scene.Polygon:
			if len(sh.Verts) < 3 {
				t.Errorf("%s: polygon has %d verts", s.ID, len(sh.Verts))
			}
			kinds["polygon"] = true
		default:
			t.Errorf("%s: unexpected shape %T", s.ID, s.Shape)
		}
	}
	if !kinds["circle"] || !kinds["polygon"] {
		t.Error("scene should contain both circles and polygons")
	}
}

func TestSnapshots_TracksMotion(t *testing.T) {
	m := testManager(t)
	id, _ := m.Create(Def{X: 100, Y: 50, Shape: scene.Circle{Radius: 5}, Density: 1})

	for i := 0; i < 30; i++ {
		m.Step(m.cfg.Dt)
	}

	for _, s := range m.Snapshots() {
		if s.ID == id && s.Pos.Y <= 50 {
			t.Errorf("body should have fallen under gravity, still at y=%g", s.Pos.Y)
		}
	}
}

func TestHitTest(t *testing.T) {
	m := testManager(t)
	m.Create(Def{ID: "ball", X: 100, Y: 100, Shape: scene.Circle{Radius: 20}, Density: 1, Draggable: true})
	m.Create(Def{ID: "slab", X: 300, Y: 300, Shape: Box(50, 50), Static: true})

	if id, ok := m.HitTest(scene.Vec2{X: 100, Y: 100}); !ok || id != "ball" {
		t.Errorf("expected ball hit, got %q ok=%v", id, ok)
	}
	if _, ok := m.HitTest(scene.Vec2{X: 500, Y: 500}); ok {
		t.Error("expected miss in empty space")
	}
	// Static slab is not draggable, so no hit even inside it.
	if _, ok := m.HitTest(scene.Vec2{X: 300, Y: 300}); ok {
		t.Error("non-draggable body should be excluded from hit-testing")
	}
}

func TestHitTest_TopmostWins(t *testing.T) {
	m := testManager(t)
	m.Create(Def{ID: "under", X: 100, Y: 100, Shape: scene.Circle{Radius: 30}, Density: 1, Draggable: true})
	m.Create(Def{ID: "over", X: 100, Y: 100, Shape: scene.Circle{Radius: 10}, Density: 1, Draggable: true})

	if id, _ := m.HitTest(scene.Vec2{X: 100, Y: 100}); id != "over" {
		t.Errorf("expected the later body to win, got %q", id)
	}
}

func TestSpawnSand(t *testing.T) {
	m := testManager(t)
	n := m.SpawnSand(320, 100)

	if n == 0 {
		t.Fatal("expected grains to spawn")
	}
	if n > m.cfg.Sand.Count {
		t.Errorf("spawned %d grains, more than requested %d", n, m.cfg.Sand.Count)
	}
	if m.Count() != n {
		t.Errorf("manager tracks %d bodies, spawned %d", m.Count(), n)
	}

	// Second spawn must not collide with the first batch's IDs.
	n2 := m.SpawnSand(320, 100)
	if m.Count() != n+n2 {
		t.Errorf("expected %d bodies after two spawns, got %d", n+n2, m.Count())
	}
}

func TestSpawnSand_CrowdedDiskUnderFills(t *testing.T) {
	m := testManager(t)
	// 500 grains at spacing 4 cannot fit a radius-30 disk; the spawn is
	// best effort and reports what it actually placed.
	m.cfg.Sand.Count = 500
	m.cfg.Sand.Radius = 2
	m.cfg.Sand.DiskRadius = 30

	n := m.SpawnSand(320, 100)
	if n >= 500 {
		t.Errorf("expected under-fill for a crowded disk, got %d", n)
	}
	if m.Count() != n {
		t.Errorf("manager tracks %d bodies, spawned %d", m.Count(), n)
	}
}

func TestStats(t *testing.T) {
	m := testManager(t)
	if err := m.SetupScene(); err != nil {
		t.Fatal(err)
	}

	st := m.Stats()
	if st.Bodies != m.Count() {
		t.Errorf("stats bodies %d != count %d", st.Bodies, m.Count())
	}

	for i := 0; i < 20; i++ {
		m.Step(m.cfg.Dt)
	}
	if st = m.Stats(); st.KineticEnergy <= 0 {
		t.Error("falling bodies should carry kinetic energy")
	}
}
