// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Draw issues the draw call for one layer.
//
// The effective matrix applies layer.Matrix first and then viewport; it
// replaces the matrix uniform while every other uniform is taken from the layer unchanged.
// Blending is straight-alpha source-over.
func Draw(frame Frame, layer *Layer, viewport mgl32.Mat4) error {
	if layer == nil {
		return ErrNilLayer
	}
	prog := layer.Program.Program()
	if prog == nil {
		return fmt.Errorf("render: draw %s: program released", layer.Label)
	}

	u := layer.Uniforms
	u.Matrix = viewport.Mul4(layer.Matrix)
	_, h := frame.Size()
	u.TargetHeight = float32(h)

	err := frame.Draw(DrawCall{
		Label:      layer.Label,
		Program:    prog,
		Vertices:   layer.VertexBuffer,
		Indices:    layer.IndexBuffer,
		IndexCount: layer.IndexCount(),
		Uniforms:   u,
		Blend:      BlendAlpha,
	})
	if err != nil {
		return fmt.Errorf("render: draw %s: %w", layer.Label, err)
	}
	return nil
}

// DrawLayers draws layers in order, stopping at the first error.
func DrawLayers(frame Frame, layers []*Layer, viewport mgl32.Mat4) error {
	for _, l := range layers {
		if err := Draw(frame, l, viewport); err != nil {
			return err
		}
	}
	return nil
}
