// Package sketchpad is an interactive drawing surface: rectangles are
// sketched by dragging the pointer and the whole scene, on top of a
// background grid, is re-rendered through a GPU pipeline every frame.
//
// # Overview
//
// The root package holds the shape model and configuration shared by the
// other packages:
//   - Shape: the closed set Rectangle, Circle, BackgroundGrid
//   - RGBA: straight-alpha float colors, parsed from hex in config files
//   - Config: window, pacing and color settings with functional options
//   - FatalInitError: shader or GPU resource failures that stop the app
//
// # Architecture
//
// The library is organized into:
//   - render: geometry compiler, shader program cache, draw invocation,
//     viewport matrix and a software backend
//   - scene: the ordered layer list and the drag state machine
//   - app: event handling and the frame loop
//   - internal/gpu: WebGPU backend on gogpu/wgpu
//   - integration/gogpuapp: native window via gogpu
//
// # Coordinate System
//
// Drawing space is normalized device space:
//   - Origin (0,0) at the center of the window
//   - X increases right, Y increases up
//   - Both axes span [-1, 1]; a viewport matrix keeps shapes square on
//     non-square windows
//
// # Logging
//
// All packages log through the logger installed with SetLogger.
// By default nothing is logged.
package sketchpad
