// Package tui is the terminal rendering back-end: the physics scene drawn
// onto a braille canvas inside a bubbletea program, with mouse dragging.
package tui

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/input"
	"github.com/san-kum/grainlab/internal/metrics"
	"github.com/san-kum/grainlab/internal/scene"
	"github.com/san-kum/grainlab/internal/world"
)

// ErrUnavailable means stdout is not a terminal; the caller may fall back to
// the GUI back-end.
var ErrUnavailable = errors.New("tui: not a terminal")

const (
	defaultCanvasW = 80
	defaultCanvasH = 24
	sidebarW       = 30
)

var (
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	statsStyle  = lipgloss.NewStyle().Padding(1, 2).Width(sidebarW)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the bubbletea model driving the simulation and its braille view.
type Model struct {
	cfg    *config.Config
	mgr    *world.Manager
	drag   *input.Dragger
	canvas *Canvas
	track  *metrics.Tracker
	save   func() (string, error)
	log    *zap.Logger

	scale     float64
	status    string
	switchReq bool
	quitting  bool
}

// New builds the TUI model. Fails with ErrUnavailable when stdout is not a
// terminal, so the shell can fall back to the GUI.
func New(cfg *config.Config, mgr *world.Manager, drag *input.Dragger, save func() (string, error), log *zap.Logger) (*Model, error) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return nil, ErrUnavailable
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{
		cfg:   cfg,
		mgr:   mgr,
		drag:  drag,
		track: metrics.NewTracker(0),
		save:  save,
		log:   log,
	}
	m.resize(defaultCanvasW, defaultCanvasH)
	return m, nil
}

// SwitchRequested reports whether the session ended with a renderer-switch
// request rather than a quit.
func (m *Model) SwitchRequested() bool {
	return m.switchReq
}

func (m *Model) resize(cells, rows int) {
	if cells < 20 {
		cells = 20
	}
	if rows < 10 {
		rows = 10
	}
	m.canvas = NewCanvas(cells, rows)
	m.scale = math.Min(
		float64(m.canvas.DotWidth())/m.cfg.Width,
		float64(m.canvas.DotHeight())/m.cfg.Height,
	)
}

func (m *Model) tick() tea.Cmd {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.switchReq = true
			m.quitting = true
			return m, tea.Quit
		case "s":
			cx, cy := m.cfg.SpawnCenter()
			n := m.mgr.SpawnSand(cx, cy)
			m.status = fmt.Sprintf("spawned %d grains", n)
		case "c":
			m.mgr.Clear()
			if err := m.mgr.SetupScene(); err != nil {
				m.status = "reset failed"
				m.log.Warn("scene reset failed", zap.Error(err))
			} else {
				m.status = "scene reset"
			}
		case "w":
			if m.save == nil {
				break
			}
			if id, err := m.save(); err != nil {
				m.status = "save failed"
				m.log.Warn("scene save failed", zap.Error(err))
			} else {
				m.status = "saved " + id
			}
		}

	case tea.MouseMsg:
		p := m.toWorld(msg.X, msg.Y)
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.drag.Press(p)
		case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft:
			m.drag.Release()
		case msg.Action == tea.MouseActionMotion:
			m.drag.Move(p)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width-sidebarW-4, msg.Height-3)

	case TickMsg:
		if m.quitting {
			return m, nil
		}
		start := time.Now()
		m.mgr.Step(m.cfg.Dt)
		m.track.ObserveStep(time.Since(start))
		m.track.ObserveEnergy(m.mgr.Stats().KineticEnergy)
		return m, m.tick()
	}

	return m, nil
}

// toWorld converts a terminal cell position to physics coordinates. The
// border eats one cell on each side.
func (m *Model) toWorld(cellX, cellY int) scene.Vec2 {
	return scene.Vec2{
		X: float64((cellX - 1) * 2) / m.scale,
		Y: float64((cellY - 1) * 4) / m.scale,
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.canvas.Clear()
	for _, snap := range m.mgr.Snapshots() {
		m.drawBody(snap)
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		m.statsPanel(),
	)
	return view
}

func (m *Model) drawBody(snap scene.Snapshot) {
	cx := int(snap.Pos.X * m.scale)
	cy := int(snap.Pos.Y * m.scale)

	switch s := snap.Shape.(type) {
	case scene.Circle:
		m.canvas.DrawCircle(cx, cy, s.Radius*m.scale)
	case scene.Polygon:
		sin, cos := math.Sincos(snap.Angle)
		pts := make([][2]int, len(s.Verts))
		for i, v := range s.Verts {
			wx := snap.Pos.X + v.X*cos - v.Y*sin
			wy := snap.Pos.Y + v.X*sin + v.Y*cos
			pts[i] = [2]int{int(wx * m.scale), int(wy * m.scale)}
		}
		m.canvas.DrawPolygon(pts)
	}
}

func (m *Model) statsPanel() string {
	st := m.mgr.Stats()

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	dragging := "-"
	if m.drag.Dragging() {
		dragging = m.drag.Target()
	}

	lines := []string{
		headerStyle.Render("grainlab"),
		"",
		row("bodies", fmt.Sprintf("%d", st.Bodies)),
		row("energy", fmt.Sprintf("%.0f", st.KineticEnergy)),
		row("step", m.track.StepTime().Round(time.Microsecond).String()),
		row("dragging", dragging),
	}
	if hist := m.track.EnergyHistory(); len(hist) >= 2 {
		lines = append(lines, "", asciigraph.Plot(hist,
			asciigraph.Height(4),
			asciigraph.Width(sidebarW-8),
		))
	}
	if m.status != "" {
		lines = append(lines, "", valueStyle.Render(m.status))
	}
	lines = append(lines, helpStyle.Render("s spawn  c reset  w save\nr switch renderer  q quit\ndrag bodies with the mouse"))

	return statsStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
