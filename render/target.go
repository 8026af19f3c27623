// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/vector"

	"github.com/gogpu/sketchpad"
)

// PixmapFrame is a CPU-backed Frame drawing into an *image.RGBA.
//
// It executes draw calls produced by SoftwareBackend buffers and programs,
// shading each covered pixel the way the WGSL programs do.
//
// Example:
//
//	backend := render.NewSoftwareBackend()
//	frame := render.NewPixmapFrame(800, 600)
//	frame.Clear(sketchpad.White)
//	render.DrawLayers(frame, layers, render.ViewportMatrix(frame.Size()))
//	img := frame.Image()
type PixmapFrame struct {
	img       *image.RGBA
	mask      *image.Alpha
	raster    *vector.Rasterizer
	presented int
}

// NewPixmapFrame creates a new frame of the given size.
func NewPixmapFrame(width, height int) *PixmapFrame {
	return &PixmapFrame{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		mask:   image.NewAlpha(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
	}
}

// Size returns the frame size in pixels.
func (f *PixmapFrame) Size() (width, height int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the frame.
func (f *PixmapFrame) Image() *image.RGBA {
	return f.img
}

// Clear fills the entire frame with c.
func (f *PixmapFrame) Clear(c sketchpad.RGBA) {
	a := clampUnit(c.A)
	px := color.RGBA{
		R: toByte(c.R * a),
		G: toByte(c.G * a),
		B: toByte(c.B * a),
		A: toByte(a),
	}
	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = px.R, px.G, px.B, px.A
	}
}

// Present counts the frame as presented. Pixels stay readable.
func (f *PixmapFrame) Present() error {
	f.presented++
	return nil
}

// Presented returns how many times Present was called.
func (f *PixmapFrame) Presented() int {
	return f.presented
}

// Draw rasterizes the call's triangles and blends the shaded result.
func (f *PixmapFrame) Draw(call DrawCall) error {
	prog, ok := call.Program.(*softProgram)
	if !ok || prog.released {
		return fmt.Errorf("%w: program %T", ErrForeignResource, call.Program)
	}
	vb, ok := call.Vertices.(*softBuffer)
	if !ok || vb.released {
		return fmt.Errorf("%w: vertex buffer %T", ErrForeignResource, call.Vertices)
	}
	ib, ok := call.Indices.(*softBuffer)
	if !ok || ib.released {
		return fmt.Errorf("%w: index buffer %T", ErrForeignResource, call.Indices)
	}
	if call.IndexCount > len(ib.indices) {
		return fmt.Errorf("render: index count %d exceeds buffer of %d", call.IndexCount, len(ib.indices))
	}

	w, h := f.Size()
	if w == 0 || h == 0 {
		return nil
	}

	tris, err := f.project(prog.kind, call.Uniforms, vb.vertices, ib.indices[:call.IndexCount-call.IndexCount%3])
	if err != nil {
		return err
	}
	if len(tris) == 0 {
		return nil
	}

	f.raster.Reset(w, h)
	f.raster.DrawOp = drawSrc
	for _, t := range tris {
		f.raster.MoveTo(t.p[0][0], t.p[0][1])
		f.raster.LineTo(t.p[1][0], t.p[1][1])
		f.raster.LineTo(t.p[2][0], t.p[2][1])
		f.raster.ClosePath()
	}
	f.raster.Draw(f.mask, f.mask.Bounds(), image.Opaque, image.Point{})

	u := call.Uniforms
	if u.TargetHeight == 0 {
		u.TargetHeight = float32(h)
	}
	sh := shader{kind: prog.kind, u: u, tris: tris}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cov := f.mask.Pix[y*f.mask.Stride+x]
			if cov == 0 {
				continue
			}
			src := sh.fragment(float32(x)+0.5, float32(y)+0.5)
			f.blend(x, y, src, float32(cov)/255)
		}
	}
	return nil
}

// project transforms indexed vertices to pixel space. The grid program
// ignores the matrix, like its vertex shader.
func (f *PixmapFrame) project(kind ProgramKind, u Uniforms, vertices []Vertex, indices []uint16) ([]triangle, error) {
	w, h := f.Size()
	tris := make([]triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		var t triangle
		for j := 0; j < 3; j++ {
			idx := int(indices[i+j])
			if idx >= len(vertices) {
				return nil, fmt.Errorf("render: index %d out of range of %d vertices", idx, len(vertices))
			}
			v := vertices[idx]
			x, y := v.Position[0], v.Position[1]
			if kind != ProgramGrid {
				clip := u.Matrix.Mul4x1([4]float32{x, y, 0, 1})
				if clip[3] != 0 {
					x, y = clip[0]/clip[3], clip[1]/clip[3]
				}
			}
			t.p[j] = [2]float32{(x + 1) / 2 * float32(w), (1 - y) / 2 * float32(h)}
			t.coord[j] = v.Coord
		}
		tris = append(tris, t)
	}
	return tris, nil
}

// blend composites src over the pixel at (x, y) with the given coverage.
// Color channels follow src*a + dst*(1-a) on the stored values; alpha
// accumulates as a + dst.a*(1-a).
func (f *PixmapFrame) blend(x, y int, src sketchpad.RGBA, coverage float32) {
	a := clampUnit(src.A) * coverage
	if a <= 0 {
		return
	}
	i := f.img.PixOffset(x, y)
	p := f.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = toByte(clampUnit(src.R)*a + float32(p[0])/255*inv)
	p[1] = toByte(clampUnit(src.G)*a + float32(p[1])/255*inv)
	p[2] = toByte(clampUnit(src.B)*a + float32(p[2])/255*inv)
	p[3] = toByte(a + float32(p[3])/255*inv)
}

// Ensure PixmapFrame implements Frame.
var _ Frame = (*PixmapFrame)(nil)
