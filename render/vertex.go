// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"math"
)

// Vertex is the per-vertex input of every program.
//
// WGSL layout (16 bytes, stride VertexStride):
//
//	@location(0) position: vec2<f32>  // offset 0
//	@location(1) coord:    vec2<f32>  // offset 8
type Vertex struct {
	// Position in drawing space.
	Position [2]float32
	// Coord is a shape-local coordinate; the circle program reads it as
	// the position inside the unit disc.
	Coord [2]float32
}

// VertexStride is the size of one encoded Vertex in bytes.
const VertexStride = 16

// quadTriangles triangulates a quad given as four corners in order.
func quadTriangles() []uint16 {
	return []uint16{0, 1, 3, 1, 2, 3}
}

// VertexBytes encodes vertices in the little-endian layout the shaders read.
func VertexBytes(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i, v := range vertices {
		o := i * VertexStride
		binary.LittleEndian.PutUint32(buf[o:], math.Float32bits(v.Position[0]))
		binary.LittleEndian.PutUint32(buf[o+4:], math.Float32bits(v.Position[1]))
		binary.LittleEndian.PutUint32(buf[o+8:], math.Float32bits(v.Coord[0]))
		binary.LittleEndian.PutUint32(buf[o+12:], math.Float32bits(v.Coord[1]))
	}
	return buf
}

// IndexBytes encodes 16-bit indices, padding the result to a multiple of
// four bytes as required by queue writes.
func IndexBytes(indices []uint16) []byte {
	n := len(indices) * 2
	buf := make([]byte, (n+3)&^3)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
