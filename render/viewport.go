// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sketchpad"
)

// viewportScale returns the per-axis scale that letterboxes drawing space
// into the largest centered square of a width×height target.
func viewportScale(width, height int) (sx, sy float32) {
	if width <= 0 || height <= 0 {
		return 1, 1
	}
	w, h := float32(width), float32(height)
	return math32.Min(1, h/w), math32.Min(1, w/h)
}

// ViewportMatrix returns diag(sx, sy, 1, 1) with sx = min(1, h/w) and
// sy = min(1, w/h), so a square in drawing space stays square on screen.
// A zero-sized target (a minimized window) yields the identity.
func ViewportMatrix(width, height int) mgl32.Mat4 {
	sx, sy := viewportScale(width, height)
	return mgl32.Scale3D(sx, sy, 1)
}

// PointerToScene maps a pointer position in window pixels (origin top-left,
// Y down) to drawing space, inverting the ViewportMatrix letterbox.
// Points outside the square map outside [-1, 1].
func PointerToScene(px, py float64, width, height int) sketchpad.Point {
	if width <= 0 || height <= 0 {
		return sketchpad.Point{}
	}
	sx, sy := viewportScale(width, height)
	ndcX := float32(2*px/float64(width) - 1)
	ndcY := float32(1 - 2*py/float64(height))
	return sketchpad.Pt(ndcX/sx, ndcY/sy)
}
