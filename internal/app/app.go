// Package app wires the world, the drag handler and a rendering back-end
// into an interactive session, with single-fallback renderer selection and
// persisted choice.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/gui"
	"github.com/san-kum/grainlab/internal/input"
	"github.com/san-kum/grainlab/internal/storage"
	"github.com/san-kum/grainlab/internal/tui"
	"github.com/san-kum/grainlab/internal/world"
)

// Kind names a rendering back-end.
type Kind string

const (
	KindGUI Kind = "gui"
	KindTUI Kind = "tui"
)

func (k Kind) other() Kind {
	if k == KindGUI {
		return KindTUI
	}
	return KindGUI
}

// ResolveKind picks the back-end to start with: explicit request first, then
// the persisted choice, then the config default.
func ResolveKind(requested string, settings *storage.Settings, cfg *config.Config) Kind {
	for _, name := range []string{requested, settings.Renderer, cfg.Renderer} {
		switch Kind(name) {
		case KindGUI, KindTUI:
			return Kind(name)
		}
	}
	return KindGUI
}

// Session owns one interactive run: a single physics world that survives
// renderer switches, and whatever back-end is currently presenting it.
type Session struct {
	cfg    *config.Config
	store  *storage.Store
	preset string
	log    *zap.Logger

	// running is the back-end currently presenting the world, which may
	// differ from the requested one after a construction fallback.
	running Kind
}

func NewSession(cfg *config.Config, store *storage.Store, preset string, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{cfg: cfg, store: store, preset: preset, log: log}
}

// Run drives back-end sessions until the user quits. A renderer switch fully
// tears down the old back-end (loop stopped, meshes disposed) before the new
// one initializes; the physics world carries over untouched.
func (s *Session) Run(kind Kind) error {
	mgr := world.New(s.cfg, s.log)
	if err := mgr.SetupScene(); err != nil {
		return err
	}
	drag := input.NewDragger(mgr)
	save := func() (string, error) {
		return s.saveScene(mgr)
	}

	for {
		ran, switched, err := s.runOnce(kind, mgr, drag, save)
		// The back-end owns the drag constraint's lifetime only while it
		// runs; never leak a live joint across sessions.
		drag.Release()
		if err != nil {
			return err
		}

		// Persist what actually ran; a fallback may have overridden kind.
		kind = ran
		s.persistChoice(kind)
		if !switched {
			return nil
		}
		kind = kind.other()
	}
}

// runOnce starts one back-end, falling back to the other exactly once if
// construction fails. Both failing is terminal. It reports which back-end
// actually ran.
func (s *Session) runOnce(kind Kind, mgr *world.Manager, drag *input.Dragger, save func() (string, error)) (Kind, bool, error) {
	switched, err := s.runBackend(kind, mgr, drag, save)
	if err == nil {
		return kind, switched, nil
	}

	s.log.Warn("renderer unavailable, falling back",
		zap.String("requested", string(kind)), zap.Error(err))

	switched, err2 := s.runBackend(kind.other(), mgr, drag, save)
	if err2 != nil {
		return kind, false, fmt.Errorf("no usable renderer: %s failed (%v), %s failed (%v)",
			kind, err, kind.other(), err2)
	}
	return kind.other(), switched, nil
}

// saveScene snapshots the world, stamped with the back-end actually showing it.
func (s *Session) saveScene(mgr *world.Manager) (string, error) {
	return s.store.SaveScene(s.preset, string(s.running), s.cfg.Seed, mgr.Snapshots())
}

func (s *Session) runBackend(kind Kind, mgr *world.Manager, drag *input.Dragger, save func() (string, error)) (bool, error) {
	s.running = kind
	switch kind {
	case KindTUI:
		model, err := tui.New(s.cfg, mgr, drag, save, s.log)
		if err != nil {
			return false, err
		}
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			return false, err
		}
		return model.SwitchRequested(), nil

	default:
		a, err := gui.New(s.cfg, mgr, drag, save, s.log)
		if err != nil {
			return false, err
		}
		defer a.Close()
		return a.Run()
	}
}

func (s *Session) persistChoice(kind Kind) {
	settings, err := s.store.LoadSettings()
	if err != nil {
		settings = &storage.Settings{}
	}
	settings.Renderer = string(kind)
	settings.Preset = s.preset
	if err := s.store.SaveSettings(settings); err != nil {
		s.log.Warn("could not persist renderer choice", zap.Error(err))
	}
}
