package scene

import "github.com/gogpu/sketchpad"

// DragState is the state of the rectangle tool: idle, or dragging from
// Start to End.
type DragState struct {
	Dragging bool
	Start    sketchpad.Point
	End      sketchpad.Point
}

// Rect returns the normalized rectangle spanned by the drag.
func (d DragState) Rect(fill, border sketchpad.RGBA) sketchpad.Rectangle {
	return sketchpad.RectFromPoints(d.Start, d.End, fill, border).Normalized()
}

// Drawer turns pointer input into rectangles on a scene.
//
// Pressing starts a drag at the last known pointer position, moving while
// dragging updates a preview rectangle, releasing commits it.
type Drawer struct {
	scene  *Scene
	fill   sketchpad.RGBA
	border sketchpad.RGBA

	state   DragState
	pointer sketchpad.Point
}

// NewDrawer creates a drawer that commits rectangles with the given colors.
func NewDrawer(s *Scene, fill, border sketchpad.RGBA) *Drawer {
	return &Drawer{scene: s, fill: fill, border: border}
}

// State returns the current drag state.
func (d *Drawer) State() DragState {
	return d.state
}

// Pointer returns the last pointer position seen by OnPointerMove.
func (d *Drawer) Pointer() sketchpad.Point {
	return d.pointer
}

// OnPointerDown starts a drag at the current pointer position. A drag in
// progress is discarded without being committed.
func (d *Drawer) OnPointerDown() error {
	d.state = DragState{Dragging: true, Start: d.pointer, End: d.pointer}
	return nil
}

// OnPointerMove records p as the pointer position. While dragging it also
// moves the end of the drag and rebuilds the scene with the preview.
func (d *Drawer) OnPointerMove(p sketchpad.Point) error {
	sketchpad.Logger().Debug("scene: pointer", "x", p.X, "y", p.Y)
	defer func() { d.pointer = p }()

	if !d.state.Dragging {
		return nil
	}
	d.state.End = p
	return d.scene.SetPreview(d.state.Rect(d.fill, d.border))
}

// OnPointerUp commits the dragged rectangle, if any, and returns to idle.
// The scene is rebuilt in either case. Zero-area drags are committed too.
func (d *Drawer) OnPointerUp() error {
	state := d.state
	d.state = DragState{}

	if !state.Dragging {
		if _, ok := d.scene.Preview(); ok {
			return d.scene.ClearPreview()
		}
		return d.scene.Rebuild()
	}
	return d.scene.commitReplacingPreview(state.Rect(d.fill, d.border))
}
