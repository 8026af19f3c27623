// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuapp

import (
	"errors"
	"sync"

	"github.com/gogpu/sketchpad/app"
	"github.com/gogpu/sketchpad/internal/gpu"
	"github.com/gogpu/sketchpad/render"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoSurface is returned by BeginFrame before a backend is attached.
var ErrNoSurface = errors.New("gogpuapp: no surface to render into")

// window adapts gogpu callbacks to app.Window.
type window struct {
	mu     sync.Mutex
	events []render.Event

	backend       *gpu.Backend
	view          hal.TextureView
	width, height int
}

var _ app.Window = (*window)(nil)

func newWindow() *window {
	return &window{}
}

func (w *window) push(ev render.Event) {
	w.mu.Lock()
	w.events = append(w.events, ev)
	w.mu.Unlock()
}

func (w *window) pointerMoved(x, y float64) {
	w.push(render.PointerMoved(x, y))
}

// pointerButton queues a move to (x, y) ahead of the button event so the
// drag starts and ends where the button changed.
func (w *window) pointerButton(pressed bool, x, y float64) {
	kind := render.EventPointerReleased
	if pressed {
		kind = render.EventPointerPressed
	}
	w.mu.Lock()
	w.events = append(w.events, render.PointerMoved(x, y), render.Event{Kind: kind, X: x, Y: y})
	w.mu.Unlock()
}

func (w *window) closed() {
	w.push(render.Event{Kind: render.EventClosed})
}

// setSurface records the swapchain view for the next frame and queues an
// EventResized when the size changed.
func (w *window) setSurface(backend *gpu.Backend, view hal.TextureView, width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if width != w.width || height != w.height {
		w.events = append(w.events, render.Resized(width, height))
	}
	w.backend = backend
	w.view = view
	w.width, w.height = width, height
}

// PollEvents drains the queue.
func (w *window) PollEvents() []render.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	evs := w.events
	w.events = nil
	return evs
}

// BeginFrame wraps the current surface view.
func (w *window) BeginFrame() (render.Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.backend == nil {
		return nil, ErrNoSurface
	}
	return w.backend.NewFrame(w.view, w.width, w.height), nil
}
