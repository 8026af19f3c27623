// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image/draw"

	"github.com/chewxy/math32"

	"github.com/gogpu/sketchpad"
)

const drawSrc = draw.Src

// SoftwareBackend is a CPU Backend paired with PixmapFrame.
//
// Programs are not compiled from WGSL; each kind maps to a Go fragment
// function with the same output as its shader. Buffers are plain copies of
// the uploaded data.
//
// Example:
//
//	backend := render.NewSoftwareBackend()
//	cache, _ := render.NewProgramCache(backend)
//	compiler := render.NewCompiler(cache, 0.01)
//	layers, err := compiler.Compile(sketchpad.Circle{Radius: 0.3, Fill: sketchpad.White})
type SoftwareBackend struct {
	compiled int
	live     int
}

// NewSoftwareBackend creates a new CPU backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// CompileProgram checks the descriptor and returns the program for its kind.
func (b *SoftwareBackend) CompileProgram(desc ProgramDescriptor) (Program, error) {
	if !desc.Kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProgram, uint8(desc.Kind))
	}
	if desc.Source == "" {
		return nil, errors.New("render: empty shader source")
	}
	b.compiled++
	return &softProgram{kind: desc.Kind}, nil
}

// UploadVertices copies vertices into a new buffer.
func (b *SoftwareBackend) UploadVertices(label string, vertices []Vertex) (Buffer, error) {
	b.live++
	return &softBuffer{owner: b, label: label, vertices: append([]Vertex(nil), vertices...)}, nil
}

// UploadIndices copies indices into a new buffer.
func (b *SoftwareBackend) UploadIndices(label string, indices []uint16) (Buffer, error) {
	b.live++
	return &softBuffer{owner: b, label: label, indices: append([]uint16(nil), indices...)}, nil
}

// Compiled returns how many programs have been compiled.
func (b *SoftwareBackend) Compiled() int {
	return b.compiled
}

// LiveBuffers returns the number of buffers not yet released.
func (b *SoftwareBackend) LiveBuffers() int {
	return b.live
}

type softProgram struct {
	kind     ProgramKind
	released bool
}

func (p *softProgram) Kind() ProgramKind { return p.kind }

func (p *softProgram) Release() { p.released = true }

type softBuffer struct {
	owner    *SoftwareBackend
	label    string
	vertices []Vertex
	indices  []uint16
	released bool
}

func (b *softBuffer) Len() int {
	if b.vertices != nil {
		return len(b.vertices)
	}
	return len(b.indices)
}

func (b *softBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.owner.live--
}

// triangle is a projected triangle: pixel positions and vertex coords.
type triangle struct {
	p     [3][2]float32
	coord [3][2]float32
}

// barycentric returns the weights of (x, y) relative to t. Points outside
// the triangle get a negative weight.
func (t *triangle) barycentric(x, y float32) (w [3]float32, ok bool) {
	a, b, c := t.p[0], t.p[1], t.p[2]
	den := (b[1]-c[1])*(a[0]-c[0]) + (c[0]-b[0])*(a[1]-c[1])
	if den == 0 {
		return w, false
	}
	w[0] = ((b[1]-c[1])*(x-c[0]) + (c[0]-b[0])*(y-c[1])) / den
	w[1] = ((c[1]-a[1])*(x-c[0]) + (a[0]-c[0])*(y-c[1])) / den
	w[2] = 1 - w[0] - w[1]
	return w, true
}

// shader evaluates the fragment stage of one program for one draw call.
type shader struct {
	kind ProgramKind
	u    Uniforms
	tris []triangle
}

// Grid spacing in framebuffer pixels.
const (
	gridMajor      = 30
	gridMinor      = 15
	gridMinorAlpha = 0.15
)

// Circle edge parameters in unit-disc distance.
const (
	circleEdge = 0.01
	circleRing = 0.99
)

func (s *shader) fragment(x, y float32) sketchpad.RGBA {
	switch s.kind {
	case ProgramCircle:
		uv := s.interpolateCoord(x, y)
		dist := math32.Hypot(uv[0], uv[1])
		outside := s.u.BorderColor.WithAlpha(0)
		fg := s.u.Color.Lerp(s.u.BorderColor, smoothstep(circleRing-circleEdge, circleRing, dist))
		return fg.Lerp(outside, smoothstep(1-circleEdge, 1, dist))

	case ProgramGrid:
		y = s.u.TargetHeight - y
		if math32.Mod(x, gridMajor) < 1 || math32.Mod(y, gridMajor) < 1 {
			return s.u.BorderColor
		}
		if math32.Mod(x, gridMinor) < 1 || math32.Mod(y, gridMinor) < 1 {
			return s.u.BorderColor.WithAlpha(gridMinorAlpha)
		}
		return s.u.Color

	default:
		return s.u.Color
	}
}

// interpolateCoord interpolates the vertex coord at (x, y) using the
// triangle that contains it, or the nearest one for edge pixels.
func (s *shader) interpolateCoord(x, y float32) [2]float32 {
	var best [3]float32
	var bt *triangle
	bestMin := float32(math32.Inf(-1))
	for i := range s.tris {
		w, ok := s.tris[i].barycentric(x, y)
		if !ok {
			continue
		}
		m := math32.Min(w[0], math32.Min(w[1], w[2]))
		if m > bestMin {
			bestMin, best, bt = m, w, &s.tris[i]
		}
	}
	if bt == nil {
		return [2]float32{}
	}
	return [2]float32{
		best[0]*bt.coord[0][0] + best[1]*bt.coord[1][0] + best[2]*bt.coord[2][0],
		best[0]*bt.coord[0][1] + best[1]*bt.coord[1][1] + best[2]*bt.coord[2][1],
	}
}

func smoothstep(e0, e1, x float32) float32 {
	t := clampUnit((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func clampUnit(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

func toByte(v float32) uint8 {
	return uint8(clampUnit(v)*255 + 0.5)
}

// Ensure SoftwareBackend implements Backend.
var _ Backend = (*SoftwareBackend)(nil)
