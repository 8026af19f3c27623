// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns shapes into GPU draw units and draws them.
//
// # Pipeline
//
//   - Geometry: pure shape → vertex/index/uniform data (Mesh)
//   - Compiler: uploads meshes through a Backend, producing Layers
//   - ProgramCache: compiles the three WGSL programs once per backend and
//     shares them between layers by reference count
//   - Draw: issues one alpha-blended draw call per layer, combining the
//     layer matrix with the per-frame ViewportMatrix
//
// # Core Interfaces
//
//   - Backend: creates programs and buffers (one per display)
//   - Frame: one frame's render target
//   - Buffer, Program: backend objects owned by layers and the cache
//
// # Backend Implementations
//
//   - SoftwareBackend + PixmapFrame: CPU rendering into *image.RGBA
//   - internal/gpu: WebGPU via gogpu/wgpu
//   - rendertest.Recorder: records calls for tests
//
// # Coordinates
//
// Layers are authored in drawing space, [-1, 1] on both axes with +Y up.
// ViewportMatrix letterboxes that square into the framebuffer and
// PointerToScene maps window pixels back into it.
package render
