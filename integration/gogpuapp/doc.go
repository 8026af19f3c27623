// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogpuapp runs a sketchpad application in a gogpu window.
//
// The data flow is:
//
//	gogpu input callbacks -> event queue -> app.App.Step -> internal/gpu Frame -> surface
//
// # Usage
//
//	err := gogpuapp.Run(cfg, func(b render.Backend) (*app.App, error) {
//	    return app.New(b, cfg)
//	})
//
// The GPU device is only available once the window exists, so setup runs
// on the first redraw. Input callbacks only queue events; the queue is
// drained by the next Step so the scene is mutated on the draw thread.
//
// # Frame pacing
//
// The window renders continuously and each redraw sleeps for whatever is
// left of Config.FrameInterval, so the loop runs at roughly that period.
package gogpuapp
