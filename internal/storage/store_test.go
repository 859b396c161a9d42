package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/grainlab/internal/scene"
)

func sampleSnaps() []scene.Snapshot {
	return []scene.Snapshot{
		{ID: "ball", Pos: scene.Vec2{X: 100.5, Y: 200.25}, Angle: 0.5, Shape: scene.Circle{Radius: 10}},
		{ID: "crate", Pos: scene.Vec2{X: 50, Y: 60}, Angle: -1.2, Shape: scene.Polygon{Verts: []scene.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}},
	}
}

func TestSaveLoadScene(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	id, err := st.SaveScene("default", "gui", 42, sampleSnaps())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("expected nonempty scene id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Preset != "default" || meta.Renderer != "gui" || meta.Seed != 42 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Bodies != 2 {
		t.Errorf("expected 2 bodies, got %d", meta.Bodies)
	}

	rows, err := st.LoadBodies(id)
	if err != nil {
		t.Fatalf("load bodies: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Kind != "circle" || rows[1].Kind != "polygon" {
		t.Errorf("shape kinds wrong: %q, %q", rows[0].Kind, rows[1].Kind)
	}
	if rows[0].X != 100.5 {
		t.Errorf("expected x 100.5, got %g", rows[0].X)
	}
	if rows[0].Size != 10 {
		t.Errorf("expected circle radius 10 as size, got %g", rows[0].Size)
	}
}

func TestSaveScene_SameSecondGetsDistinctIDs(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	// Back-to-back saves land within one clock second; neither may
	// overwrite the other.
	a, err := st.SaveScene("default", "gui", 1, sampleSnaps())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	b, err := st.SaveScene("default", "gui", 1, sampleSnaps())
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct scene ids, both are %q", a)
	}

	for _, id := range []string{a, b} {
		if _, err := st.Load(id); err != nil {
			t.Errorf("scene %s not loadable: %v", id, err)
		}
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())

	scenes, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("expected no scenes, got %d", len(scenes))
	}

	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := st.SaveScene("default", "tui", 1, sampleSnaps()); err != nil {
		t.Fatal(err)
	}

	scenes, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scenes) != 1 {
		t.Errorf("expected 1 scene, got %d", len(scenes))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	st := New(t.TempDir())

	// Missing file yields zero-value settings, not an error.
	settings, err := st.LoadSettings()
	if err != nil {
		t.Fatalf("load missing settings: %v", err)
	}
	if settings.Renderer != "" {
		t.Errorf("expected empty renderer, got %q", settings.Renderer)
	}

	if err := st.SaveSettings(&Settings{Renderer: "tui", Preset: "avalanche"}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	settings, err = st.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.Renderer != "tui" || settings.Preset != "avalanche" {
		t.Errorf("settings mismatch: %+v", settings)
	}
}

func TestExportCSV(t *testing.T) {
	rows := []BodyRow{{ID: "a", Kind: "circle", X: 1, Y: 2, Angle: 0.25}}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, rows); err != nil {
		t.Fatalf("export csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "a,circle,") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestExportJSON(t *testing.T) {
	meta := &SceneMetadata{ID: "scene_1", Preset: "default", Renderer: "gui", Seed: 7}
	rows := []BodyRow{{ID: "a", Kind: "circle", X: 1, Y: 2}}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, rows); err != nil {
		t.Fatalf("export json: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"id": "scene_1"`) || !strings.Contains(out, `"circle"`) {
		t.Errorf("unexpected json: %s", out)
	}
}
