// Package gui is the raylib rendering back-end: the physics scene drawn as
// extruded 3D models through a camera, with mouse dragging.
package gui

import (
	"errors"
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/input"
	"github.com/san-kum/grainlab/internal/metrics"
	"github.com/san-kum/grainlab/internal/scene"
	"github.com/san-kum/grainlab/internal/world"
)

// ErrUnavailable means the window could not be created (typically no
// display); the caller may fall back to the terminal back-end.
var ErrUnavailable = errors.New("gui: window unavailable")

// App drives one raylib session. Create with New, run with Run, always Close.
type App struct {
	cfg    *config.Config
	mgr    *world.Manager
	drag   *input.Dragger
	cache  *scene.Cache
	proj   scene.Projection
	camera rl.Camera3D
	track  *metrics.Tracker
	save   func() (string, error)
	log    *zap.Logger
	bg     rl.Color
	closed bool
}

// New opens the window and builds the scene cache. save is invoked on the
// snapshot key and may be nil.
func New(cfg *config.Config, mgr *world.Manager, drag *input.Dragger, save func() (string, error), log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	rl.SetTraceLogLevel(rl.LogError)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "grainlab")
	if !rl.IsWindowReady() {
		return nil, ErrUnavailable
	}
	rl.SetTargetFPS(int32(cfg.FPS))

	proj := scene.Projection{Mode: projectionMode(cfg.Projection), Width: cfg.Width, Height: cfg.Height}
	bg := config.ParseColor(cfg.Colors.Background)

	a := &App{
		cfg:   cfg,
		mgr:   mgr,
		drag:  drag,
		cache: scene.NewCache(factory{}, proj, log),
		proj:  proj,
		track: metrics.NewTracker(0),
		save:  save,
		log:   log,
		bg:    rl.NewColor(bg.R, bg.G, bg.B, 255),
	}
	a.camera = a.cameraFor(proj.Mode)
	return a, nil
}

func projectionMode(name string) scene.Mode {
	if name == "screen" {
		return scene.ScreenAnchored
	}
	return scene.Centered
}

// cameraFor builds the camera matching the projection convention: centered
// mode looks orthographically at the origin, screen-anchored mode puts a
// perspective camera over the canvas center.
func (a *App) cameraFor(mode scene.Mode) rl.Camera3D {
	if mode == scene.ScreenAnchored {
		cx := float32(a.cfg.Width / 2)
		cy := float32(a.cfg.Height / 2)
		dist := float32(a.cfg.Height/2) / float32(math.Tan(45*math.Pi/360))
		return rl.NewCamera3D(
			rl.NewVector3(cx, cy, dist),
			rl.NewVector3(cx, cy, 0),
			rl.NewVector3(0, 1, 0),
			45,
			rl.CameraPerspective,
		)
	}
	return rl.NewCamera3D(
		rl.NewVector3(0, 0, 1000),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		float32(a.cfg.Height), // fovy is view height in orthographic mode
		rl.CameraOrthographic,
	)
}

// Run drives the frame loop until the window closes or the user asks to
// switch back-ends. Each frame: input, one physics step, cache sync, draw.
func (a *App) Run() (switchRenderer bool, err error) {
	for !rl.WindowShouldClose() {
		if a.handleInput() {
			return true, nil
		}

		start := time.Now()
		a.mgr.Step(a.cfg.Dt)
		a.track.ObserveStep(time.Since(start))
		a.track.ObserveEnergy(a.mgr.Stats().KineticEnergy)
		a.cache.Sync(a.mgr.Snapshots())

		rl.BeginDrawing()
		rl.ClearBackground(a.bg)
		rl.BeginMode3D(a.camera)
		a.cache.Each(func(m scene.Mesh) {
			m.(*mesh).draw()
		})
		rl.EndMode3D()
		a.drawHUD()
		rl.EndDrawing()
	}
	return false, nil
}

// handleInput reports true when the user requested a renderer switch.
func (a *App) handleInput() bool {
	// Window coordinates are physics coordinates: both start at the top-left
	// with Y down. Only rendering recenters.
	mouse := rl.GetMousePosition()
	p := scene.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		a.drag.Press(p)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		a.drag.Release()
	case a.drag.Dragging():
		a.drag.Move(p)
	}

	if rl.IsKeyPressed(rl.KeyS) {
		cx, cy := a.cfg.SpawnCenter()
		n := a.mgr.SpawnSand(cx, cy)
		a.log.Info("spawned sand", zap.Int("grains", n))
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.mgr.Clear()
		if err := a.mgr.SetupScene(); err != nil {
			a.log.Warn("scene reset failed", zap.Error(err))
		}
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.toggleProjection()
	}
	if rl.IsKeyPressed(rl.KeyW) && a.save != nil {
		if id, err := a.save(); err != nil {
			a.log.Warn("scene save failed", zap.Error(err))
		} else {
			a.log.Info("scene saved", zap.String("id", id))
		}
	}
	return rl.IsKeyPressed(rl.KeyR)
}

// toggleProjection flips between the two coordinate conventions. Meshes carry
// projection-independent geometry, so only the projection and camera change.
func (a *App) toggleProjection() {
	mode := scene.Centered
	if a.proj.Mode == scene.Centered {
		mode = scene.ScreenAnchored
	}
	a.proj.Mode = mode
	a.cache.SetProjection(a.proj)
	a.camera = a.cameraFor(mode)
}

func (a *App) drawHUD() {
	st := a.mgr.Stats()
	rl.DrawText("s spawn sand   drag with mouse   p projection   c reset   w save   r switch   esc quit", 10, int32(a.cfg.Height)-24, 10, rl.Gray)
	rl.DrawText(fmt.Sprintf("bodies %d  ke %.0f  step %s", st.Bodies, st.KineticEnergy, a.track.StepTime().Round(time.Microsecond)), 10, 10, 10, rl.Gray)
	rl.DrawFPS(int32(a.cfg.Width)-90, 10)
}

// Close tears the session down: disposes every cached model, then the window.
// Idempotent; Run must not be called afterwards.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.drag.Release()
	a.cache.Clear()
	rl.CloseWindow()
}
