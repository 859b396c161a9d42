package app

import (
	"testing"

	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/storage"
	"github.com/san-kum/grainlab/internal/world"
)

func TestResolveKind(t *testing.T) {
	cfg := config.DefaultConfig() // default renderer: gui

	tests := []struct {
		name      string
		requested string
		saved     string
		want      Kind
	}{
		{"explicit wins", "tui", "gui", KindTUI},
		{"saved choice when no request", "", "tui", KindTUI},
		{"config default as last resort", "", "", KindGUI},
		{"garbage request falls through", "webgl", "tui", KindTUI},
		{"garbage everywhere defaults to gui", "webgl", "canvas", KindGUI},
	}

	for _, tt := range tests {
		got := ResolveKind(tt.requested, &storage.Settings{Renderer: tt.saved}, cfg)
		if got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestKindOther(t *testing.T) {
	if KindGUI.other() != KindTUI || KindTUI.other() != KindGUI {
		t.Error("other() should flip between the two back-ends")
	}
}

func TestSaveSceneRecordsRunningBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	s := NewSession(cfg, st, "default", nil)
	mgr := world.New(cfg, nil)
	if err := mgr.SetupScene(); err != nil {
		t.Fatal(err)
	}

	// Simulate the gui request having fallen back to the tui: the save must
	// carry the back-end that is actually running, not the requested one.
	s.running = KindTUI

	id, err := s.saveScene(mgr)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Renderer != string(KindTUI) {
		t.Errorf("saved renderer %q, want %q", meta.Renderer, KindTUI)
	}
}
