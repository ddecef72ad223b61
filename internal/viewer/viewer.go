// Package viewer wires the window, renderer, input, and view controller
// into the main application loop.
package viewer

import (
	gomath "math"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/robolens/robolens/internal/config"
	"github.com/robolens/robolens/internal/engine/camera"
	"github.com/robolens/robolens/internal/engine/input"
	"github.com/robolens/robolens/internal/engine/renderer"
	"github.com/robolens/robolens/internal/engine/scene"
	"github.com/robolens/robolens/internal/engine/window"
	"github.com/robolens/robolens/internal/logger"
	"github.com/robolens/robolens/internal/tracking"
	"github.com/robolens/robolens/internal/view"
	"github.com/robolens/robolens/pkg/math"
)

const windowTitle = "robolens"

// Viewer is the top-level application.
type Viewer struct {
	config *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	camera     *camera.Camera
	frames     *tracking.FrameManager
	targetNode *scene.Node
	controller *view.FPSRollController

	cursors     map[view.Cursor]*sdl.Cursor
	lastCursor  view.Cursor
	lastStatus  string
	simTime     float32
	demoTargets bool

	running bool
}

// New creates a viewer from the loaded configuration.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:      cfg,
		demoTargets: true,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, err
	}

	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
	if err != nil {
		v.window.Close()
		return nil, err
	}

	v.input = input.New()

	v.camera = camera.New()
	v.camera.FOV = cfg.Camera.FOV
	v.camera.Aspect = float32(cfg.Window.Width) / float32(cfg.Window.Height)

	v.frames = tracking.NewFrameManager(cfg.Tracking.FixedFrame)
	v.targetNode = scene.NewNode(cfg.Tracking.TargetFrame)

	tracker := tracking.NewTracker(v.frames, v.targetNode, cfg.Tracking.TargetFrame, logger.Named("tracking"))

	v.controller = view.New(v.camera, tracker, view.Config{
		ComposeYaw: cfg.Camera.ComposeYaw,
		Home:       cfg.Camera.Home,
	})
	v.controller.OnActivate()
	v.controller.Reset()

	v.cursors = map[view.Cursor]*sdl.Cursor{
		view.CursorDefault:  sdl.CreateSystemCursor(sdl.SYSTEM_CURSOR_ARROW),
		view.CursorRotate3D: sdl.CreateSystemCursor(sdl.SYSTEM_CURSOR_HAND),
		view.CursorMoveXY:   sdl.CreateSystemCursor(sdl.SYSTEM_CURSOR_SIZEALL),
		view.CursorMoveZ:    sdl.CreateSystemCursor(sdl.SYSTEM_CURSOR_SIZENS),
	}

	logger.Info("viewer initialized",
		zap.String("target_frame", cfg.Tracking.TargetFrame),
		zap.String("fixed_frame", cfg.Tracking.FixedFrame))

	return v, nil
}

// Run executes the main loop until the window is closed.
func (v *Viewer) Run() {
	v.running = true
	lastTicks := sdl.GetTicks64()

	for v.running {
		now := sdl.GetTicks64()
		dt := float32(now-lastTicks) / 1000.0
		lastTicks = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.simTime += dt
		if v.demoTargets {
			v.moveDemoTarget()
		}

		v.controller.Update(dt, dt)

		v.render()
		v.refreshChrome()

		v.window.SwapBuffers()
	}
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventQuit:
			v.running = false
		case input.EventWindowResize:
			v.renderer.Resize(e.Width, e.Height)
			v.camera.Aspect = float32(e.Width) / float32(e.Height)
		case input.EventKeyDown:
			v.handleKey(e.Key)
		case input.EventMouse:
			v.controller.HandleMouseEvent(e.Mouse)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_R:
		logger.Info("resetting view")
		v.controller.Reset()
	case sdl.SCANCODE_SPACE:
		v.demoTargets = !v.demoTargets
	}
}

// moveDemoTarget drives the tracked frame along a slow circle so the
// follow behavior is visible without an external pose source.
func (v *Viewer) moveDemoTarget() {
	t := float64(v.simTime)

	pos := math.Vec3{
		X: float32(3 * gomath.Cos(0.2*t)),
		Y: float32(3 * gomath.Sin(0.2*t)),
		Z: 0.5,
	}
	heading := float32(0.2*t) + math.HalfPi
	roll := float32(0.15 * gomath.Sin(0.7*t))

	orientation := math.QuatFromAxisAngle(math.Vec3{Z: 1}, heading).
		Mul(math.QuatFromAxisAngle(math.Vec3{X: 1}, roll))

	v.frames.SetTransform(v.targetNode.Name(), pos, orientation)
}

func (v *Viewer) render() {
	v.renderer.Begin()

	viewProj := v.camera.ProjectionMatrix().Mul(v.camera.ViewMatrix())
	v.renderer.DrawGrid(viewProj)
	v.renderer.DrawAxes(viewProj, v.targetNode.Transform())
}

// refreshChrome syncs the OS cursor and the window title with the
// controller state, skipping the SDL calls when nothing changed.
func (v *Viewer) refreshChrome() {
	if cursor := v.controller.CursorHint(); cursor != v.lastCursor {
		if c, ok := v.cursors[cursor]; ok {
			sdl.SetCursor(c)
		}
		v.lastCursor = cursor
	}

	if status := v.controller.Status(); status != v.lastStatus {
		v.window.SetTitle(windowTitle + " - " + status)
		v.lastStatus = status
	}
}

// Close releases all resources.
func (v *Viewer) Close() {
	for _, c := range v.cursors {
		sdl.FreeCursor(c)
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
