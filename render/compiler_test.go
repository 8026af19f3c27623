// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/render"
	"github.com/gogpu/sketchpad/render/rendertest"
)

func newCompiler(t *testing.T) (*render.Compiler, *rendertest.Recorder) {
	t.Helper()
	rec := rendertest.NewRecorder()
	cache, err := render.NewProgramCache(rec)
	require.NoError(t, err)
	return render.NewCompiler(cache, sketchpad.DefaultBorderThickness), rec
}

func positions(vs []render.Vertex) [][2]float32 {
	out := make([][2]float32, len(vs))
	for i, v := range vs {
		out[i] = v.Position
	}
	return out
}

func TestGeometryRectangle(t *testing.T) {
	rect := sketchpad.Rectangle{X0: -0.5, Y0: -0.25, X1: 0.5, Y1: 0.25, Fill: sketchpad.DefaultFill, Border: sketchpad.DefaultBorder}
	meshes := render.Geometry(rect, 0.01)
	require.Len(t, meshes, 2)

	outer, inner := meshes[0], meshes[1]
	assert.Equal(t, render.ProgramSolidFill, outer.Kind)
	assert.Equal(t, render.ProgramSolidFill, inner.Kind)

	assert.Equal(t, [][2]float32{{-0.5, -0.25}, {0.5, -0.25}, {0.5, 0.25}, {-0.5, 0.25}}, positions(outer.Vertices))
	want := [][2]float32{{-0.49, -0.24}, {0.49, -0.24}, {0.49, 0.24}, {-0.49, 0.24}}
	for i, p := range positions(inner.Vertices) {
		assert.InDelta(t, want[i][0], p[0], 1e-6)
		assert.InDelta(t, want[i][1], p[1], 1e-6)
	}
	for _, m := range meshes {
		assert.Equal(t, []uint16{0, 1, 3, 1, 2, 3}, m.Indices)
		for _, v := range m.Vertices {
			assert.Equal(t, [2]float32{0, 0}, v.Coord)
		}
		assert.Equal(t, sketchpad.Transparent, m.Uniforms.BorderColor)
		assert.Equal(t, mgl32.Ident4(), m.Uniforms.Matrix)
	}

	assert.Equal(t, sketchpad.DefaultBorder, outer.Uniforms.Color, "outer quad is drawn in the border color")
	assert.Equal(t, sketchpad.DefaultFill, inner.Uniforms.Color, "inner quad is drawn in the fill color")
}

func TestGeometryThinRectangleNotClamped(t *testing.T) {
	rect := sketchpad.Rectangle{X0: 0, Y0: 0, X1: 0.005, Y1: 0.5}
	inner := render.Geometry(rect, 0.01)[1]
	assert.InDelta(t, 0.01, inner.Vertices[0].Position[0], 1e-6)
	assert.InDelta(t, -0.005, inner.Vertices[1].Position[0], 1e-6, "inverted inner quad is kept as is")
}

func TestGeometryCircle(t *testing.T) {
	c := sketchpad.Circle{X: 0, Y: 0, Radius: 0.3, Fill: sketchpad.DefaultFill, Border: sketchpad.DefaultBorder}
	meshes := render.Geometry(c, 0.01)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, render.ProgramCircle, m.Kind)
	assert.Equal(t, [][2]float32{{-0.3, 0.3}, {0.3, 0.3}, {0.3, -0.3}, {-0.3, -0.3}}, positions(m.Vertices))

	coords := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		coords[i] = v.Coord
	}
	assert.Equal(t, [][2]float32{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}, coords)
	assert.Equal(t, []uint16{0, 1, 3, 1, 2, 3}, m.Indices)
	assert.Equal(t, sketchpad.DefaultFill, m.Uniforms.Color)
	assert.Equal(t, sketchpad.DefaultBorder, m.Uniforms.BorderColor)
	assert.Equal(t, float32(0.3), m.Uniforms.Radius)
}

func TestGeometryGrid(t *testing.T) {
	grid := sketchpad.BackgroundGrid{Color: sketchpad.DefaultGridColor}
	meshes := render.Geometry(grid, 0.01)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, render.ProgramGrid, m.Kind)
	assert.Equal(t, [][2]float32{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}, positions(m.Vertices))
	for _, v := range m.Vertices {
		assert.Equal(t, v.Position, v.Coord)
	}
	assert.Equal(t, sketchpad.Transparent, m.Uniforms.Color)
	assert.Equal(t, sketchpad.DefaultGridColor, m.Uniforms.BorderColor)
}

func TestGeometryUnknownShape(t *testing.T) {
	assert.Nil(t, render.Geometry(nil, 0.01))
}

func TestCompileDeterministic(t *testing.T) {
	c, _ := newCompiler(t)
	shapes := []sketchpad.Shape{
		sketchpad.Rectangle{X0: 0.1, Y0: 0.7, X1: -0.3, Y1: 0.2, Fill: sketchpad.White, Border: sketchpad.Black},
		sketchpad.Circle{X: 0.2, Y: -0.1, Radius: 0.4},
		sketchpad.BackgroundGrid{Color: sketchpad.DefaultGridColor},
	}
	for _, s := range shapes {
		a, err := c.Compile(s)
		require.NoError(t, err)
		b, err := c.Compile(s)
		require.NoError(t, err)

		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, a[i].Vertices, b[i].Vertices)
			assert.Equal(t, a[i].Indices, b[i].Indices)
			assert.Equal(t, a[i].Uniforms, b[i].Uniforms)
			assert.Equal(t, a[i].Program.Kind(), b[i].Program.Kind())
			assert.Equal(t, a[i].Program.Program(), b[i].Program.Program(), "layers share the compiled program")
		}
	}
}

func TestCompileUploadsBuffers(t *testing.T) {
	c, rec := newCompiler(t)
	layers, err := c.Compile(sketchpad.Rectangle{X1: 0.5, Y1: 0.5})
	require.NoError(t, err)
	require.Len(t, layers, 2)

	assert.Equal(t, 4, rec.LiveBuffers())
	for _, l := range layers {
		assert.Equal(t, 4, l.VertexBuffer.Len())
		assert.Equal(t, 6, l.IndexBuffer.Len())
		assert.Equal(t, 6, l.IndexCount())
		assert.Equal(t, mgl32.Ident4(), l.Matrix)
	}
	assert.Equal(t, 2, c.Programs().Refs(render.ProgramSolidFill))

	render.ReleaseLayers(layers)
	assert.Zero(t, rec.LiveBuffers())
	assert.Zero(t, c.Programs().Refs(render.ProgramSolidFill))
}

func TestCompileUploadFailureReleases(t *testing.T) {
	c, rec := newCompiler(t)
	// The border layer uploads two buffers; the fill layer's vertex upload fails.
	rec.FailUploadAfter = 2

	layers, err := c.Compile(sketchpad.Rectangle{X1: 0.5, Y1: 0.5})
	assert.Nil(t, layers)
	require.Error(t, err)
	assert.ErrorIs(t, err, sketchpad.ErrFatalInit)
	assert.ErrorIs(t, err, rendertest.ErrInjected)

	assert.Zero(t, rec.LiveBuffers(), "partial allocations are released")
	assert.Zero(t, c.Programs().Refs(render.ProgramSolidFill))
}

func TestCompileProgramFailure(t *testing.T) {
	c, rec := newCompiler(t)
	rec.FailCompile[render.ProgramCircle] = rendertest.ErrInjected

	_, err := c.Compile(sketchpad.Circle{Radius: 0.1})
	assert.ErrorIs(t, err, sketchpad.ErrFatalInit)
	assert.Zero(t, rec.LiveBuffers())
}
