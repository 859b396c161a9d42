package scene

import (
	"errors"
	"fmt"
	"testing"
)

type fakeMesh struct {
	pos      Vec3
	angle    float64
	disposed bool
}

func (m *fakeMesh) SetTransform(pos Vec3, angle float64) {
	m.pos = pos
	m.angle = angle
}

func (m *fakeMesh) Dispose() { m.disposed = true }

type fakeFactory struct {
	built  int
	meshes map[string]*fakeMesh
	fail   map[string]bool
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{meshes: make(map[string]*fakeMesh), fail: make(map[string]bool)}
}

func (f *fakeFactory) Build(s Snapshot) (Mesh, error) {
	if f.fail[s.ID] {
		return nil, errors.New("unsupported shape")
	}
	f.built++
	m := &fakeMesh{}
	f.meshes[s.ID] = m
	return m, nil
}

func snap(id string, x, y, angle float64) Snapshot {
	return Snapshot{ID: id, Pos: Vec2{X: x, Y: y}, Angle: angle, Shape: Circle{Radius: 1}}
}

func TestSync_CreatesAndUpdates(t *testing.T) {
	f := newFakeFactory()
	c := NewCache(f, Projection{Mode: Centered, Width: 640, Height: 480}, nil)

	c.Sync([]Snapshot{snap("a", 320, 240, 0.5)})

	if f.built != 1 {
		t.Fatalf("expected 1 build, got %d", f.built)
	}
	m := f.meshes["a"]
	if m.pos.X != 0 || m.pos.Y != 0 {
		t.Errorf("expected centered origin, got %v", m.pos)
	}
	if m.angle != -0.5 {
		t.Errorf("expected angle -0.5, got %g", m.angle)
	}
}

func TestSync_IdempotentOnUnchangedFrame(t *testing.T) {
	f := newFakeFactory()
	c := NewCache(f, Projection{Mode: Centered, Width: 640, Height: 480}, nil)

	snaps := []Snapshot{snap("a", 1, 2, 0), snap("b", 3, 4, 0)}
	c.Sync(snaps)
	c.Sync(snaps)

	if f.built != 2 {
		t.Errorf("expected 2 builds across both syncs, got %d", f.built)
	}
	for id, m := range f.meshes {
		if m.disposed {
			t.Errorf("mesh %s should not be disposed", id)
		}
	}
}

func TestSync_RemovesVanishedBodies(t *testing.T) {
	f := newFakeFactory()
	c := NewCache(f, Projection{Width: 640, Height: 480}, nil)

	c.Sync([]Snapshot{snap("a", 0, 0, 0), snap("b", 0, 0, 0)})
	c.Sync([]Snapshot{snap("a", 0, 0, 0)})

	if !f.meshes["b"].disposed {
		t.Error("mesh b should be disposed after its body vanished")
	}
	if f.meshes["a"].disposed {
		t.Error("mesh a should survive")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 cached mesh, got %d", c.Len())
	}
}

func TestSync_AddAndRemoveInOneCall(t *testing.T) {
	f := newFakeFactory()
	c := NewCache(f, Projection{Width: 640, Height: 480}, nil)

	c.Sync([]Snapshot{snap("old", 0, 0, 0)})
	c.Sync([]Snapshot{snap("new", 0, 0, 0)})

	if !f.meshes["old"].disposed {
		t.Error("old mesh should be disposed")
	}
	if f.meshes["new"] == nil || f.meshes["new"].disposed {
		t.Error("new mesh should be live")
	}
}

func TestSync_BuildFailureSkipsBodyNotFrame(t *testing.T) {
	f := newFakeFactory()
	f.fail["bad"] = true
	c := NewCache(f, Projection{Width: 640, Height: 480}, nil)

	c.Sync([]Snapshot{snap("bad", 0, 0, 0), snap("good", 0, 0, 0)})

	if c.Len() != 1 {
		t.Fatalf("expected only the good mesh cached, got %d", c.Len())
	}
	if f.meshes["good"] == nil {
		t.Error("good mesh should have been built despite the bad one")
	}

	// Next frame the failed body is retried.
	f.fail["bad"] = false
	c.Sync([]Snapshot{snap("bad", 0, 0, 0), snap("good", 0, 0, 0)})
	if c.Len() != 2 {
		t.Errorf("expected retry to build the bad mesh, cache has %d", c.Len())
	}
}

func TestClear(t *testing.T) {
	f := newFakeFactory()
	c := NewCache(f, Projection{Width: 640, Height: 480}, nil)

	c.Sync([]Snapshot{snap("a", 0, 0, 0), snap("b", 0, 0, 0)})
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
	for id, m := range f.meshes {
		if !m.disposed {
			t.Errorf("mesh %s should be disposed by Clear", id)
		}
	}
}

func TestSync_ManyBodies(t *testing.T) {
	f := newFakeFactory()
	c := NewCache(f, Projection{Width: 640, Height: 480}, nil)

	snaps := make([]Snapshot, 300)
	for i := range snaps {
		snaps[i] = snap(fmt.Sprintf("grain-%d", i), float64(i), float64(i), 0)
	}
	c.Sync(snaps)
	if c.Len() != 300 {
		t.Fatalf("expected 300 meshes, got %d", c.Len())
	}

	c.Sync(nil)
	if c.Len() != 0 {
		t.Errorf("expected all meshes disposed, got %d", c.Len())
	}
}
