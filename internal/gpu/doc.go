//go:build !nogpu

// Package gpu is the WebGPU display backend for sketchpad.
//
// It implements render.Backend on top of a gogpu/wgpu HAL device. Shader
// programs are WGSL modules compiled to SPIR-V by gogpu/naga, so a broken
// shader reports the compiler's diagnostic before any pipeline is created.
//
// # Frames
//
// A Frame wraps the swapchain view for one redraw. Draw calls are recorded
// with their own uniform buffer and bind group, then Present encodes a
// single render pass (clear, then every draw in order), submits it and
// waits on a fence so the caller can present the surface immediately.
//
// # Build tags
//
// The package is excluded with -tags nogpu; the software backend in the
// render package covers headless use.
package gpu
