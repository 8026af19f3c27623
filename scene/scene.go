package scene

import (
	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/render"
)

// Compiler turns a shape into draw layers. *render.Compiler implements it.
type Compiler interface {
	Compile(shape sketchpad.Shape) ([]*render.Layer, error)
}

// Scene holds the committed shapes, an optional preview shape drawn on top
// of them, and the layer list derived from both.
//
// Every mutating method rebuilds the layer list from scratch before it
// returns, so Layers always matches Shapes followed by Preview.
//
// Example:
//
//	s := scene.New(render.NewCompiler(cache, 0.01))
//	s.Commit(sketchpad.Circle{Radius: 0.3})
//	render.DrawLayers(frame, s.Layers(), viewport)
type Scene struct {
	compiler Compiler

	shapes  []sketchpad.Shape
	preview sketchpad.Shape

	layers []*render.Layer
	// previewLayers is how many entries at the end of layers belong to
	// the preview.
	previewLayers int

	// version is incremented on each successful rebuild
	version uint64
}

// New creates an empty scene compiling with c.
func New(c Compiler) *Scene {
	return &Scene{compiler: c}
}

// Rebuild recompiles every shape, committed shapes first in insertion
// order and the preview last. The previous layers are released once the
// new list is complete.
//
// On failure the previous list stays in place and the error is returned.
func (s *Scene) Rebuild() error {
	layers := make([]*render.Layer, 0, len(s.layers))
	add := func(shape sketchpad.Shape) error {
		ls, err := s.compiler.Compile(shape)
		if err != nil {
			return err
		}
		layers = append(layers, ls...)
		return nil
	}

	for _, shape := range s.shapes {
		if err := add(shape); err != nil {
			render.ReleaseLayers(layers)
			return err
		}
	}
	committed := len(layers)
	if s.preview != nil {
		if err := add(s.preview); err != nil {
			render.ReleaseLayers(layers)
			return err
		}
	}

	old := s.layers
	s.layers = layers
	s.previewLayers = len(layers) - committed
	s.version++
	render.ReleaseLayers(old)

	sketchpad.Logger().Debug("scene: rebuilt",
		"shapes", len(s.shapes), "preview", s.preview != nil, "layers", len(layers))
	return nil
}

// Commit appends shape to the committed shapes and rebuilds. If the
// rebuild fails the shape is not kept.
func (s *Scene) Commit(shape sketchpad.Shape) error {
	s.shapes = append(s.shapes, shape)
	if err := s.Rebuild(); err != nil {
		s.shapes = s.shapes[:len(s.shapes)-1]
		return err
	}
	return nil
}

// SetPreview replaces the preview shape and rebuilds.
func (s *Scene) SetPreview(shape sketchpad.Shape) error {
	prev := s.preview
	s.preview = shape
	if err := s.Rebuild(); err != nil {
		s.preview = prev
		return err
	}
	return nil
}

// ClearPreview removes the preview shape and rebuilds.
func (s *Scene) ClearPreview() error {
	return s.SetPreview(nil)
}

// Layers returns the current layer list in draw order.
// The slice is owned by the scene and replaced on the next rebuild.
func (s *Scene) Layers() []*render.Layer {
	return s.layers
}

// Shapes returns a copy of the committed shapes in insertion order.
func (s *Scene) Shapes() []sketchpad.Shape {
	return append([]sketchpad.Shape(nil), s.shapes...)
}

// Preview returns the preview shape, if any.
func (s *Scene) Preview() (sketchpad.Shape, bool) {
	return s.preview, s.preview != nil
}

// Version returns a counter incremented by every successful rebuild.
func (s *Scene) Version() uint64 {
	return s.version
}

// Close releases the current layers. The scene must not be used afterwards.
func (s *Scene) Close() {
	render.ReleaseLayers(s.layers)
	s.layers = nil
	s.previewLayers = 0
}

// commitReplacingPreview commits shape and drops the preview with a single
// rebuild. The preview is gone afterwards even if the commit fails.
func (s *Scene) commitReplacingPreview(shape sketchpad.Shape) error {
	s.preview = nil
	if err := s.Commit(shape); err != nil {
		s.dropPreviewLayers()
		return err
	}
	return nil
}

// dropPreviewLayers releases the preview's layers without recompiling the
// committed shapes.
func (s *Scene) dropPreviewLayers() {
	if s.previewLayers == 0 {
		return
	}
	keep := len(s.layers) - s.previewLayers
	render.ReleaseLayers(s.layers[keep:])
	s.layers = s.layers[:keep:keep]
	s.previewLayers = 0
	s.version++
}
