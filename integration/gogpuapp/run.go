// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuapp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/app"
	"github.com/gogpu/sketchpad/internal/gpu"
	"github.com/gogpu/sketchpad/render"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilSetup is returned by Run without a setup function.
	ErrNilSetup = errors.New("gogpuapp: nil setup")

	// ErrNoHalDevice is returned when the window's device provider does not
	// expose a HAL device and queue.
	ErrNoHalDevice = errors.New("gogpuapp: provider does not expose a HAL device")

	// ErrNoPointerEvents is returned when the window cannot deliver mouse
	// input.
	ErrNoPointerEvents = errors.New("gogpuapp: event source has no mouse callbacks")
)

// Setup builds the application once the GPU backend exists.
type Setup func(backend render.Backend) (*app.App, error)

// mouseEvents is the part of the gogpu event source Run listens to.
type mouseEvents interface {
	OnMouseMove(fn func(x, y float64))
	OnMousePress(fn func(button gpucontext.MouseButton, x, y float64))
	OnMouseRelease(fn func(button gpucontext.MouseButton, x, y float64))
}

// Run opens a window described by cfg.Window and drives the application
// returned by setup until the window is closed. A regular close returns
// nil; setup and per-frame errors stop the loop and are returned.
func Run(cfg sketchpad.Config, setup Setup) error {
	if setup == nil {
		return ErrNilSetup
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := sketchpad.Logger()
	if !cfg.Window.VSync {
		log.Info("gogpuapp: vsync cannot be disabled, presenting with fifo")
	}

	gapp := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Window.Title).
		WithSize(cfg.Window.Width, cfg.Window.Height).
		WithContinuousRender(true))

	d := &driver{
		gapp:  gapp,
		setup: setup,
		win:   newWindow(),
		pace:  newPacer(cfg.FrameInterval),
	}
	if err := d.bindInput(gapp.EventSource()); err != nil {
		return err
	}
	gapp.OnDraw(d.draw)
	gapp.OnClose(d.shutdown)

	log.Info("gogpuapp: window opening",
		slog.String("title", cfg.Window.Title),
		slog.Int("width", cfg.Window.Width),
		slog.Int("height", cfg.Window.Height))

	runErr := gapp.Run()
	d.shutdown()
	if d.err != nil {
		return d.err
	}
	if runErr != nil {
		return fmt.Errorf("gogpuapp: run: %w", runErr)
	}
	return nil
}

// driver connects one gogpu app to one sketchpad app.
type driver struct {
	gapp  *gogpu.App
	setup Setup
	win   *window
	pace  *pacer

	backend *gpu.Backend
	app     *app.App
	err     error
	done    bool
	closed  bool
}

// bindInput forwards primary-button mouse input to the window queue.
func (d *driver) bindInput(src any) error {
	me, ok := src.(mouseEvents)
	if !ok {
		return ErrNoPointerEvents
	}
	me.OnMouseMove(d.win.pointerMoved)
	me.OnMousePress(func(button gpucontext.MouseButton, x, y float64) {
		if button == gpucontext.MouseButtonLeft {
			d.win.pointerButton(true, x, y)
		}
	})
	me.OnMouseRelease(func(button gpucontext.MouseButton, x, y float64) {
		if button == gpucontext.MouseButtonLeft {
			d.win.pointerButton(false, x, y)
		}
	})
	return nil
}

func (d *driver) draw(dc *gogpu.Context) {
	if d.done {
		return
	}
	sw, sh := dc.SurfaceSize()
	w, h := int(sw), int(sh)
	if w <= 0 || h <= 0 {
		return
	}
	if d.app == nil {
		provider := d.gapp.GPUContextProvider()
		if provider == nil {
			return
		}
		if err := d.start(provider); err != nil {
			d.fail(err)
			return
		}
	}

	view := surfaceTarget(dc.SurfaceView())
	if view == nil {
		return
	}
	d.win.setSurface(d.backend, view, w, h)

	more, err := d.app.Step(d.win)
	if err != nil {
		d.fail(err)
		return
	}
	if !more {
		d.stop()
		return
	}
	d.pace.wait()
}

// start creates the backend from provider and runs setup.
func (d *driver) start(provider any) error {
	backend, err := backendFrom(provider)
	if err != nil {
		return err
	}
	application, err := d.setup(backend)
	if err != nil {
		return err
	}
	d.backend = backend
	d.app = application
	sketchpad.Logger().Info("gogpuapp: application started",
		slog.String("format", fmt.Sprint(backend.Format())))
	return nil
}

// fail records the first error and quits.
func (d *driver) fail(err error) {
	if d.err == nil {
		d.err = err
	}
	d.stop()
}

func (d *driver) stop() {
	if d.done {
		return
	}
	d.done = true
	d.gapp.Quit()
}

// shutdown delivers EventClosed and releases GPU resources while the
// device is still alive. Safe to call twice.
func (d *driver) shutdown() {
	d.done = true
	if d.closed {
		return
	}
	d.closed = true
	if d.app == nil {
		return
	}
	d.win.closed()
	if _, err := d.app.Step(d.win); err != nil && d.err == nil {
		d.err = err
	}
	d.app.Close()
}

// surfaceTarget returns the HAL view behind the current swapchain view,
// or nil when no frame could be acquired.
func surfaceTarget(sv *wgpu.TextureView) hal.TextureView {
	if sv == nil {
		return nil
	}
	return sv.HalTextureView()
}

// halDevice is the HAL access offered by *wgpu.Device.
type halDevice interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
}

var _ halDevice = (*wgpu.Device)(nil)

// backendFrom builds a gpu.Backend from a gogpu device provider. The
// provider hands out a *wgpu.Device whose HAL device and queue back the
// renderer.
func backendFrom(provider any) (*gpu.Backend, error) {
	dp, ok := provider.(interface{ Device() gpucontext.Device })
	if !ok {
		return nil, ErrNoHalDevice
	}
	raw := dp.Device()
	if wd, ok := raw.(*wgpu.Device); ok && wd == nil {
		return nil, fmt.Errorf("%w: nil *wgpu.Device", ErrNoHalDevice)
	}
	dev, ok := raw.(halDevice)
	if !ok {
		return nil, fmt.Errorf("%w: device is %T", ErrNoHalDevice, raw)
	}
	device, queue := dev.HalDevice(), dev.HalQueue()
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: device %T has no HAL backend", ErrNoHalDevice, raw)
	}

	format := gputypes.TextureFormatUndefined
	if fp, ok := provider.(interface {
		SurfaceFormat() gputypes.TextureFormat
	}); ok {
		format = fp.SurfaceFormat()
	}
	return gpu.NewBackend(device, queue, format)
}
