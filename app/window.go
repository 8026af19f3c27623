package app

import "github.com/gogpu/sketchpad/render"

// Window is the native window the application runs in.
//
// integration/gogpuapp implements it on top of gogpu; tests use fakes.
type Window interface {
	// PollEvents returns the events received since the previous call.
	PollEvents() []render.Event

	// BeginFrame acquires the next frame to draw into.
	BeginFrame() (render.Frame, error)
}
