// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sketchpad"
)

// drawShape compiles shape with a software backend and draws it onto a
// white frame of the given size.
func drawShape(t *testing.T, w, h int, border float32, shapes ...sketchpad.Shape) *PixmapFrame {
	t.Helper()
	backend := NewSoftwareBackend()
	cache, err := NewProgramCache(backend)
	if err != nil {
		t.Fatalf("NewProgramCache: %v", err)
	}
	compiler := NewCompiler(cache, border)

	frame := NewPixmapFrame(w, h)
	frame.Clear(sketchpad.White)
	for _, s := range shapes {
		layers, err := compiler.Compile(s)
		if err != nil {
			t.Fatalf("Compile(%T): %v", s, err)
		}
		if err := DrawLayers(frame, layers, ViewportMatrix(w, h)); err != nil {
			t.Fatalf("DrawLayers: %v", err)
		}
	}
	return frame
}

func pixel(f *PixmapFrame, x, y int) color.RGBA {
	return f.Image().RGBAAt(x, y)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestPixmapFrameClear(t *testing.T) {
	f := NewPixmapFrame(4, 3)
	if w, h := f.Size(); w != 4 || h != 3 {
		t.Fatalf("Size() = %dx%d, want 4x3", w, h)
	}
	f.Clear(sketchpad.RGBA{R: 1, A: 0.5})
	if got := pixel(f, 3, 2); got != (color.RGBA{R: 128, A: 128}) {
		t.Errorf("pixel after clear = %v, want premultiplied {128 0 0 128}", got)
	}
}

func TestSoftwareGrid(t *testing.T) {
	f := drawShape(t, 90, 90, 0.01, sketchpad.BackgroundGrid{Color: sketchpad.DefaultGridColor})

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"major line", 0, 7, 191},  // 255 * (1 - 0.25)
		{"major line 30", 30, 7, 191},
		{"major row", 7, 59, 191},
		{"bottom row", 7, 89, 191},
		{"top row", 7, 0, 255},
		{"minor line", 15, 7, 217}, // 255 * (1 - 0.15)
		{"minor row", 7, 44, 217},
		{"cell", 7, 7, 255},
		{"next to line", 31, 7, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixel(f, tt.x, tt.y)
			if !near(got.R, tt.want) || got.R != got.G || got.A != 255 {
				t.Errorf("pixel(%d,%d) = %v, want gray %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSoftwareRectangle(t *testing.T) {
	rect := sketchpad.Rectangle{X0: 0.5, Y0: 0.5, X1: -0.5, Y1: -0.5, Fill: sketchpad.DefaultFill, Border: sketchpad.Black}
	f := drawShape(t, 200, 200, 0.1, rect.Normalized())

	// Bounds span pixels 50..150; the border is 10 pixels wide.
	if got := pixel(f, 100, 100); !near(got.R, 230) || got.A != 255 {
		t.Errorf("center = %v, want fill 230", got)
	}
	for _, p := range [][2]int{{55, 100}, {145, 100}, {100, 55}, {100, 145}} {
		if got := pixel(f, p[0], p[1]); got.R != 0 || got.A != 255 {
			t.Errorf("border pixel %v = %v, want black", p, got)
		}
	}
	for _, p := range [][2]int{{20, 100}, {180, 100}, {100, 20}} {
		if got := pixel(f, p[0], p[1]); got.R != 255 {
			t.Errorf("outside pixel %v = %v, want white", p, got)
		}
	}
}

func TestSoftwareCircle(t *testing.T) {
	circle := sketchpad.Circle{Radius: 0.5, Fill: sketchpad.RGB(1, 0, 0), Border: sketchpad.Black}
	f := drawShape(t, 200, 200, 0.01, circle)

	if got := pixel(f, 100, 100); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("center = %v, want red", got)
	}
	// Pixel center 149.5 is at distance 0.99: the border ring.
	if got := pixel(f, 149, 100); got.R > 40 || got.G > 40 {
		t.Errorf("ring = %v, want near black", got)
	}
	// Corner of the bounding quad lies outside the disc.
	if got := pixel(f, 52, 52); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("quad corner = %v, want untouched white", got)
	}
}

func TestSoftwareViewportLetterbox(t *testing.T) {
	full := sketchpad.Rectangle{X0: -1, Y0: -1, X1: 1, Y1: 1, Fill: sketchpad.Black, Border: sketchpad.Black}
	f := drawShape(t, 200, 100, 0.01, full)

	// sx = 0.5: the drawing square covers x in [50, 150).
	if got := pixel(f, 25, 50); got.R != 255 {
		t.Errorf("letterbox margin = %v, want white", got)
	}
	if got := pixel(f, 100, 50); got.R != 0 {
		t.Errorf("drawing area = %v, want black", got)
	}
	if got := pixel(f, 175, 50); got.R != 255 {
		t.Errorf("letterbox margin = %v, want white", got)
	}
}

func TestSoftwareAlphaBlend(t *testing.T) {
	half := sketchpad.Rectangle{X0: -1, Y0: -1, X1: 1, Y1: 1, Fill: sketchpad.RGBA{A: 0.5}, Border: sketchpad.RGBA{A: 0.5}}
	f := drawShape(t, 10, 10, 0.2, half)

	// Border and fill overlap in the middle: 255 * 0.5 * 0.5.
	if got := pixel(f, 5, 5); !near(got.R, 64) || got.A != 255 {
		t.Errorf("overlap = %v, want 64", got)
	}
	if got := pixel(f, 0, 5); !near(got.R, 128) {
		t.Errorf("border only = %v, want 128", got)
	}
}

func TestSoftwareBackendBuffers(t *testing.T) {
	b := NewSoftwareBackend()
	vb, err := b.UploadVertices("v", []Vertex{{}, {}, {}})
	if err != nil {
		t.Fatal(err)
	}
	ib, _ := b.UploadIndices("i", []uint16{0, 1, 2})
	if vb.Len() != 3 || ib.Len() != 3 {
		t.Errorf("Len() = %d/%d, want 3/3", vb.Len(), ib.Len())
	}
	if b.LiveBuffers() != 2 {
		t.Errorf("LiveBuffers() = %d, want 2", b.LiveBuffers())
	}
	vb.Release()
	vb.Release()
	if b.LiveBuffers() != 1 {
		t.Errorf("LiveBuffers() after release = %d, want 1", b.LiveBuffers())
	}

	if _, err := b.CompileProgram(ProgramDescriptor{Kind: ProgramKind(7), Source: "x"}); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := b.CompileProgram(ProgramDescriptor{Kind: ProgramGrid}); err == nil {
		t.Error("expected error for empty source")
	}
	if _, err := b.CompileProgram(ProgramGrid.Descriptor()); err != nil {
		t.Errorf("CompileProgram: %v", err)
	}
	if b.Compiled() != 1 {
		t.Errorf("Compiled() = %d, want 1", b.Compiled())
	}
}

func TestPixmapFrameRejectsForeignResources(t *testing.T) {
	f := NewPixmapFrame(4, 4)
	err := f.Draw(DrawCall{Uniforms: Uniforms{Matrix: mgl32.Ident4()}})
	if err == nil {
		t.Fatal("expected error for nil program")
	}

	b := NewSoftwareBackend()
	prog, _ := b.CompileProgram(ProgramSolidFill.Descriptor())
	vb, _ := b.UploadVertices("v", []Vertex{{}, {}, {}})
	ib, _ := b.UploadIndices("i", []uint16{0, 1, 5})
	err = f.Draw(DrawCall{Program: prog, Vertices: vb, Indices: ib, IndexCount: 3, Uniforms: Uniforms{Matrix: mgl32.Ident4()}})
	if err == nil {
		t.Error("expected out-of-range index error")
	}
	err = f.Draw(DrawCall{Program: prog, Vertices: vb, Indices: ib, IndexCount: 9})
	if err == nil {
		t.Error("expected index count error")
	}
}

func TestPixmapFramePresent(t *testing.T) {
	f := NewPixmapFrame(1, 1)
	_ = f.Present()
	_ = f.Present()
	if f.Presented() != 2 {
		t.Errorf("Presented() = %d, want 2", f.Presented())
	}
}
