// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/go-gl/mathgl/mgl32"

// Layer is one draw unit of a compiled shape: geometry, the program it is
// drawn with and its uniforms.
//
// Layers are produced by Compiler.Compile and never modified afterwards.
// A layer owns its buffers and one program reference; Release frees them.
type Layer struct {
	Label string

	Vertices []Vertex
	Indices  []uint16

	Program *ProgramRef

	// Matrix is the layer's own transform, applied before the viewport.
	Matrix   mgl32.Mat4
	Uniforms Uniforms

	VertexBuffer Buffer
	IndexBuffer  Buffer

	released bool
}

// IndexCount returns the number of indices drawn.
func (l *Layer) IndexCount() int {
	return len(l.Indices)
}

// Released reports whether Release has been called.
func (l *Layer) Released() bool {
	return l.released
}

// Release frees the layer's buffers and drops its program reference.
// Releasing twice is a no-op.
func (l *Layer) Release() {
	if l == nil || l.released {
		return
	}
	l.released = true
	if l.VertexBuffer != nil {
		l.VertexBuffer.Release()
	}
	if l.IndexBuffer != nil {
		l.IndexBuffer.Release()
	}
	l.Program.Release()
}

// ReleaseLayers releases every layer in layers.
func ReleaseLayers(layers []*Layer) {
	for _, l := range layers {
		l.Release()
	}
}
