// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sketchpad"
)

// Mesh is the backend-independent part of a layer: what Geometry produces
// for one draw unit of a shape.
type Mesh struct {
	Label    string
	Kind     ProgramKind
	Vertices []Vertex
	Indices  []uint16
	Uniforms Uniforms
}

// Geometry turns a shape into meshes, in draw order.
//
//   - Rectangle: an outer quad in the border color, then an inner quad
//     inset by borderThickness in the fill color. A rectangle thinner than
//     twice the border gets an inverted inner quad; it is not clamped.
//   - Circle: one bounding quad whose coords span the unit square.
//   - BackgroundGrid: one quad covering the whole target.
//
// Corners are emitted in the order (x0,y0), (x1,y0), (x1,y1), (x0,y1) and
// triangulated as [0 1 3 1 2 3]. Uniform matrices are identity.
func Geometry(shape sketchpad.Shape, borderThickness float32) []Mesh {
	switch s := shape.(type) {
	case sketchpad.Rectangle:
		b := borderThickness
		return []Mesh{
			{
				Label:    "rectangle/border",
				Kind:     ProgramSolidFill,
				Vertices: quad(s.X0, s.Y0, s.X1, s.Y1),
				Indices:  quadTriangles(),
				Uniforms: Uniforms{Color: s.Border, BorderColor: sketchpad.Transparent, Matrix: mgl32.Ident4()},
			},
			{
				Label:    "rectangle/fill",
				Kind:     ProgramSolidFill,
				Vertices: quad(s.X0+b, s.Y0+b, s.X1-b, s.Y1-b),
				Indices:  quadTriangles(),
				Uniforms: Uniforms{Color: s.Fill, BorderColor: sketchpad.Transparent, Matrix: mgl32.Ident4()},
			},
		}

	case sketchpad.Circle:
		x, y, r := s.X, s.Y, s.Radius
		return []Mesh{{
			Label: "circle",
			Kind:  ProgramCircle,
			Vertices: []Vertex{
				{Position: [2]float32{x - r, y + r}, Coord: [2]float32{-1, 1}},
				{Position: [2]float32{x + r, y + r}, Coord: [2]float32{1, 1}},
				{Position: [2]float32{x + r, y - r}, Coord: [2]float32{1, -1}},
				{Position: [2]float32{x - r, y - r}, Coord: [2]float32{-1, -1}},
			},
			Indices: quadTriangles(),
			Uniforms: Uniforms{
				Color:       s.Fill,
				BorderColor: s.Border,
				Matrix:      mgl32.Ident4(),
				Center:      [2]float32{x, y},
				Radius:      r,
			},
		}}

	case sketchpad.BackgroundGrid:
		return []Mesh{{
			Label: "grid",
			Kind:  ProgramGrid,
			Vertices: []Vertex{
				{Position: [2]float32{-1, 1}, Coord: [2]float32{-1, 1}},
				{Position: [2]float32{1, 1}, Coord: [2]float32{1, 1}},
				{Position: [2]float32{1, -1}, Coord: [2]float32{1, -1}},
				{Position: [2]float32{-1, -1}, Coord: [2]float32{-1, -1}},
			},
			Indices:  quadTriangles(),
			Uniforms: Uniforms{Color: sketchpad.Transparent, BorderColor: s.Color, Matrix: mgl32.Ident4()},
		}}
	}
	return nil
}

// quad returns the four corners of an axis-aligned quad with zero coords.
func quad(x0, y0, x1, y1 float32) []Vertex {
	return []Vertex{
		{Position: [2]float32{x0, y0}},
		{Position: [2]float32{x1, y0}},
		{Position: [2]float32{x1, y1}},
		{Position: [2]float32{x0, y1}},
	}
}

// Compiler turns shapes into layers backed by GPU buffers.
type Compiler struct {
	programs        *ProgramCache
	borderThickness float32
}

// NewCompiler creates a compiler that takes programs from programs and
// uploads through the cache's backend.
func NewCompiler(programs *ProgramCache, borderThickness float32) *Compiler {
	return &Compiler{programs: programs, borderThickness: borderThickness}
}

// Programs returns the program cache the compiler draws from.
func (c *Compiler) Programs() *ProgramCache {
	return c.programs
}

// Compile produces the layers of shape in draw order.
//
// Any failure releases what was already allocated for the shape and is
// reported as a *sketchpad.FatalInitError.
func (c *Compiler) Compile(shape sketchpad.Shape) ([]*Layer, error) {
	meshes := Geometry(shape, c.borderThickness)
	if meshes == nil {
		return nil, fmt.Errorf("render: cannot compile shape %T", shape)
	}

	layers := make([]*Layer, 0, len(meshes))
	for _, m := range meshes {
		l, err := c.compileMesh(m)
		if err != nil {
			ReleaseLayers(layers)
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}

func (c *Compiler) compileMesh(m Mesh) (*Layer, error) {
	prog, err := c.programs.Get(m.Kind)
	if err != nil {
		return nil, err
	}

	backend := c.programs.Backend()
	l := &Layer{
		Label:    m.Label,
		Vertices: m.Vertices,
		Indices:  m.Indices,
		Program:  prog,
		Matrix:   mgl32.Ident4(),
		Uniforms: m.Uniforms,
	}

	l.VertexBuffer, err = backend.UploadVertices(m.Label, m.Vertices)
	if err != nil {
		l.Release()
		return nil, uploadError("upload vertices", m.Label, err)
	}
	l.IndexBuffer, err = backend.UploadIndices(m.Label, m.Indices)
	if err != nil {
		l.Release()
		return nil, uploadError("upload indices", m.Label, err)
	}
	return l, nil
}

func uploadError(op, label string, err error) error {
	return &sketchpad.FatalInitError{Op: op, Label: label, Diagnostic: err.Error(), Err: err}
}
