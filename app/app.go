// Package app wires the drawing surface together: it owns the program
// cache, the background grid, the scene and the drawer, routes window
// events to them and renders frames.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/render"
	"github.com/gogpu/sketchpad/scene"
)

// DemoCircle is the circle seeded by Config.DemoCircle.
func DemoCircle(cfg sketchpad.Config) sketchpad.Circle {
	return sketchpad.Circle{X: 0, Y: 0, Radius: 0.3, Fill: cfg.Fill, Border: cfg.Border}
}

// Option configures an App.
type Option func(*options)

type options struct {
	shapes []sketchpad.Shape
}

// WithShapes commits shapes to the scene before the first frame.
func WithShapes(shapes ...sketchpad.Shape) Option {
	return func(o *options) {
		o.shapes = append(o.shapes, shapes...)
	}
}

// App is a running drawing surface bound to one backend.
//
// App is NOT thread-safe: events, frames and Close must come from the
// thread that owns the window.
type App struct {
	cfg sketchpad.Config

	programs   *render.ProgramCache
	background []*render.Layer
	scene      *scene.Scene
	drawer     *scene.Drawer

	// width and height are the last known framebuffer size, used to map
	// pointer positions into drawing space.
	width, height int

	closed bool
}

// New creates an application on backend.
//
// All shader programs are compiled up front; a compile failure is returned
// as a *sketchpad.FatalInitError and nothing is left allocated.
func New(backend render.Backend, cfg sketchpad.Config, opts ...Option) (*App, error) {
	if backend == nil {
		return nil, render.ErrNilBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	sketchpad.PropagateLogger(backend)

	programs, err := render.NewProgramCache(backend)
	if err != nil {
		return nil, err
	}
	if err := programs.Precompile(); err != nil {
		programs.Close()
		return nil, err
	}

	compiler := render.NewCompiler(programs, cfg.BorderThickness)
	background, err := compiler.Compile(sketchpad.BackgroundGrid{Color: cfg.GridColor})
	if err != nil {
		programs.Close()
		return nil, err
	}

	s := scene.New(compiler)
	a := &App{
		cfg:        cfg,
		programs:   programs,
		background: background,
		scene:      s,
		drawer:     scene.NewDrawer(s, cfg.Fill, cfg.Border),
		width:      cfg.Window.Width,
		height:     cfg.Window.Height,
	}

	shapes := o.shapes
	if cfg.DemoCircle {
		shapes = append([]sketchpad.Shape{DemoCircle(cfg)}, shapes...)
	}
	for _, shape := range shapes {
		if err := s.Commit(shape); err != nil {
			a.Close()
			return nil, err
		}
	}

	sketchpad.Logger().Info("app: ready",
		"width", cfg.Window.Width, "height", cfg.Window.Height, "shapes", len(shapes))
	return a, nil
}

// Scene returns the scene holding the drawn shapes.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Drawer returns the drawing state machine.
func (a *App) Drawer() *scene.Drawer {
	return a.drawer
}

// Programs returns the shader program cache.
func (a *App) Programs() *render.ProgramCache {
	return a.programs
}

// Config returns the configuration the app was created with.
func (a *App) Config() sketchpad.Config {
	return a.cfg
}

// Closed reports whether the window has been closed.
func (a *App) Closed() bool {
	return a.closed
}

// HandleEvent applies one window event.
func (a *App) HandleEvent(ev render.Event) error {
	switch ev.Kind {
	case render.EventClosed:
		sketchpad.Logger().Info("app: window closed")
		a.closed = true
	case render.EventResized:
		a.width, a.height = ev.Width, ev.Height
	case render.EventPointerMoved:
		return a.drawer.OnPointerMove(render.PointerToScene(ev.X, ev.Y, a.width, a.height))
	case render.EventPointerPressed:
		return a.drawer.OnPointerDown()
	case render.EventPointerReleased:
		return a.drawer.OnPointerUp()
	}
	return nil
}

// RenderFrame clears frame, draws the background grid and then the scene
// layers in order, and presents it.
func (a *App) RenderFrame(frame render.Frame) error {
	w, h := frame.Size()
	a.width, a.height = w, h
	viewport := render.ViewportMatrix(w, h)

	frame.Clear(a.cfg.ClearColor)
	if err := render.DrawLayers(frame, a.background, viewport); err != nil {
		return fmt.Errorf("app: draw background: %w", err)
	}
	if err := render.DrawLayers(frame, a.scene.Layers(), viewport); err != nil {
		return fmt.Errorf("app: draw scene: %w", err)
	}
	if err := frame.Present(); err != nil {
		return fmt.Errorf("app: present: %w", err)
	}
	return nil
}

// Step runs one loop iteration: drain events, then render a frame.
// It returns false once the window has been closed.
func (a *App) Step(w Window) (bool, error) {
	for _, ev := range w.PollEvents() {
		if err := a.HandleEvent(ev); err != nil {
			return false, err
		}
	}
	if a.closed {
		return false, nil
	}

	frame, err := w.BeginFrame()
	if err != nil {
		return false, fmt.Errorf("app: begin frame: %w", err)
	}
	if err := a.RenderFrame(frame); err != nil {
		return false, err
	}
	return true, nil
}

// Run calls Step until the window is closed, ctx is done or an error
// occurs, sleeping Config.FrameInterval between iterations. It returns
// nil on a regular shutdown.
func (a *App) Run(ctx context.Context, w Window) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		more, err := a.Step(w)
		if err != nil || !more {
			return err
		}
		if a.cfg.FrameInterval <= 0 {
			continue
		}
		t := time.NewTimer(a.cfg.FrameInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// Close releases every layer and program. Close is idempotent.
func (a *App) Close() {
	if a.scene != nil {
		a.scene.Close()
	}
	render.ReleaseLayers(a.background)
	a.background = nil
	a.programs.Close()
}
