// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/sketchpad"
)

// Sentinel errors for the render package.
var (
	// ErrNilBackend is returned when a nil Backend is passed to a constructor.
	ErrNilBackend = errors.New("render: nil backend")

	// ErrNilLayer is returned by Draw for a nil layer.
	ErrNilLayer = errors.New("render: nil layer")

	// ErrUnknownProgram is returned for a ProgramKind outside the fixed set.
	ErrUnknownProgram = errors.New("render: unknown program kind")

	// ErrCacheClosed is returned by ProgramCache.Get after Close.
	ErrCacheClosed = errors.New("render: program cache closed")

	// ErrForeignResource is returned when a backend receives a buffer or
	// program created by a different backend.
	ErrForeignResource = errors.New("render: resource belongs to another backend")
)

// Backend creates the GPU objects a layer is made of.
//
// A Backend corresponds to one display: programs compiled through it are
// only valid for frames it produces. Implementations:
//
//   - internal/gpu: WebGPU through gogpu/wgpu
//   - SoftwareBackend: CPU rasterizer drawing into *image.RGBA
//   - rendertest.Recorder: records calls, draws nothing
//
// Thread Safety: Backends are NOT thread-safe. The window thread owns them.
type Backend interface {
	// CompileProgram builds a shader program from WGSL source.
	// A failure carries the compiler diagnostic in its error text.
	CompileProgram(desc ProgramDescriptor) (Program, error)

	// UploadVertices copies vertex data into a new GPU buffer.
	UploadVertices(label string, vertices []Vertex) (Buffer, error)

	// UploadIndices copies 16-bit triangle-list indices into a new GPU buffer.
	UploadIndices(label string, indices []uint16) (Buffer, error)
}

// Buffer is an uploaded vertex or index buffer.
type Buffer interface {
	// Len returns the number of elements (vertices or indices) stored.
	Len() int

	// Release frees the GPU memory. Releasing twice is a no-op.
	Release()
}

// Program is a compiled shader program.
type Program interface {
	// Kind returns which of the fixed programs this is.
	Kind() ProgramKind

	// Release destroys the program. Only the ProgramCache calls it.
	Release()
}

// ProgramDescriptor describes a program to compile.
type ProgramDescriptor struct {
	Kind  ProgramKind
	Label string

	// Source is a WGSL module containing both entry points.
	Source string

	VertexEntry   string
	FragmentEntry string
}

// BlendMode selects the fixed-function blend applied to a draw call.
type BlendMode uint8

const (
	// BlendAlpha is source-over with straight alpha:
	// dst = src.rgb*src.a + dst.rgb*(1-src.a).
	BlendAlpha BlendMode = iota
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendAlpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// DrawCall is a single indexed draw with one set of uniforms.
type DrawCall struct {
	Label      string
	Program    Program
	Vertices   Buffer
	Indices    Buffer
	IndexCount int
	Uniforms   Uniforms
	Blend      BlendMode
}

// Frame is one frame's render target, obtained from the window.
//
// The frame is cleared once, receives any number of draw calls in order,
// then is presented.
type Frame interface {
	// Size returns the framebuffer size in pixels.
	Size() (width, height int)

	// Clear fills the whole target with c.
	Clear(c sketchpad.RGBA)

	// Draw issues one draw call.
	Draw(call DrawCall) error

	// Present finishes the frame.
	Present() error
}
