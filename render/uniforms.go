// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sketchpad"
)

// Uniforms are the per-draw parameters shared by all programs.
//
// WGSL layout (UniformsSize bytes):
//
//	struct Uniforms {
//	    matrix:       mat4x4<f32>,  // offset 0
//	    color:        vec4<f32>,    // offset 64
//	    border_color: vec4<f32>,    // offset 80
//	    center:       vec2<f32>,    // offset 96
//	    radius:       f32,          // offset 104
//	    target_height: f32,         // offset 108
//	}
type Uniforms struct {
	Color       sketchpad.RGBA
	BorderColor sketchpad.RGBA
	Matrix      mgl32.Mat4
	Center      [2]float32
	Radius      float32

	// TargetHeight is the framebuffer height in pixels. The grid program
	// uses it to measure rows from the bottom edge.
	TargetHeight float32
}

// UniformsSize is the size of the encoded uniform block in bytes.
const UniformsSize = 112

// Bytes encodes u in the little-endian WGSL uniform layout.
// The matrix is written column-major, as mgl32 stores it.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformsSize)
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i, v := range u.Matrix {
		put(i*4, v)
	}
	for i, v := range u.Color.Array() {
		put(64+i*4, v)
	}
	for i, v := range u.BorderColor.Array() {
		put(80+i*4, v)
	}
	put(96, u.Center[0])
	put(100, u.Center[1])
	put(104, u.Radius)
	put(108, u.TargetHeight)
	return buf
}
