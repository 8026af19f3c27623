// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render_test

import (
	"fmt"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/render"
)

// ExampleGeometry shows the draw units a rectangle compiles to.
func ExampleGeometry() {
	rect := sketchpad.Rectangle{X0: -0.5, Y0: -0.5, X1: 0.5, Y1: 0.5, Fill: sketchpad.White, Border: sketchpad.Black}
	for _, m := range render.Geometry(rect, 0.1) {
		fmt.Println(m.Label, m.Kind, len(m.Vertices), m.Indices)
	}
	// Output:
	// rectangle/border solid 4 [0 1 3 1 2 3]
	// rectangle/fill solid 4 [0 1 3 1 2 3]
}

// ExampleViewportMatrix shows the letterbox scale for a landscape window.
func ExampleViewportMatrix() {
	m := render.ViewportMatrix(1024, 768)
	fmt.Println(m.At(0, 0), m.At(1, 1))
	// Output:
	// 0.75 1
}

// ExamplePixmapFrame renders a circle on the CPU.
func ExamplePixmapFrame() {
	backend := render.NewSoftwareBackend()
	cache, _ := render.NewProgramCache(backend)
	compiler := render.NewCompiler(cache, sketchpad.DefaultBorderThickness)

	layers, err := compiler.Compile(sketchpad.Circle{Radius: 0.5, Fill: sketchpad.Black, Border: sketchpad.Black})
	if err != nil {
		fmt.Println(err)
		return
	}

	frame := render.NewPixmapFrame(64, 64)
	frame.Clear(sketchpad.White)
	if err := render.DrawLayers(frame, layers, render.ViewportMatrix(frame.Size())); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(frame.Image().RGBAAt(32, 32))
	// Output:
	// {0 0 0 255}
}
