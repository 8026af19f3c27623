// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "fmt"

// EventKind classifies window events.
type EventKind uint8

const (
	// EventOther is any event the application ignores.
	EventOther EventKind = iota
	// EventClosed is sent when the user closes the window.
	EventClosed
	// EventPointerMoved carries the new pointer position in X, Y.
	EventPointerMoved
	// EventPointerPressed is a primary-button press.
	EventPointerPressed
	// EventPointerReleased is a primary-button release.
	EventPointerReleased
	// EventResized carries the new framebuffer size in Width, Height.
	EventResized
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventOther:
		return "other"
	case EventClosed:
		return "closed"
	case EventPointerMoved:
		return "pointer-moved"
	case EventPointerPressed:
		return "pointer-pressed"
	case EventPointerReleased:
		return "pointer-released"
	case EventResized:
		return "resized"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a window event. Pointer positions are window pixels with the
// origin at the top-left corner.
type Event struct {
	Kind EventKind

	X, Y float64

	Width, Height int
}

// PointerMoved returns an EventPointerMoved at (x, y).
func PointerMoved(x, y float64) Event {
	return Event{Kind: EventPointerMoved, X: x, Y: y}
}

// Resized returns an EventResized for a width×height framebuffer.
func Resized(width, height int) Event {
	return Event{Kind: EventResized, Width: width, Height: height}
}
