// Package rendertest provides a render.Backend that records calls instead
// of doing GPU work, for tests of packages built on render.
package rendertest

import (
	"errors"
	"fmt"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/render"
)

// ErrInjected is the default error returned by injected failures.
var ErrInjected = errors.New("rendertest: injected failure")

// Recorder is a render.Backend that records compile and upload calls.
//
// Failures can be injected per program kind with FailCompile, and for
// uploads with FailUploadAfter.
type Recorder struct {
	// Compiles counts CompileProgram calls per kind, including failed ones.
	Compiles map[render.ProgramKind]int

	// FailCompile makes CompileProgram fail for a kind with the given error.
	FailCompile map[render.ProgramKind]error

	// FailUploadAfter makes every upload fail once this many uploads have
	// succeeded. Negative disables the failure.
	FailUploadAfter int

	uploads  int
	buffers  []*Buffer
	programs []*Program
}

// NewRecorder creates a recorder with no injected failures.
func NewRecorder() *Recorder {
	return &Recorder{
		Compiles:        make(map[render.ProgramKind]int),
		FailCompile:     make(map[render.ProgramKind]error),
		FailUploadAfter: -1,
	}
}

// CompileProgram records the call and returns a fake program.
func (r *Recorder) CompileProgram(desc render.ProgramDescriptor) (render.Program, error) {
	r.Compiles[desc.Kind]++
	if err := r.FailCompile[desc.Kind]; err != nil {
		return nil, err
	}
	p := &Program{Desc: desc}
	r.programs = append(r.programs, p)
	return p, nil
}

// UploadVertices records a vertex buffer.
func (r *Recorder) UploadVertices(label string, vertices []render.Vertex) (render.Buffer, error) {
	if err := r.upload(); err != nil {
		return nil, err
	}
	b := &Buffer{Label: label, Vertices: append([]render.Vertex(nil), vertices...)}
	r.buffers = append(r.buffers, b)
	return b, nil
}

// UploadIndices records an index buffer.
func (r *Recorder) UploadIndices(label string, indices []uint16) (render.Buffer, error) {
	if err := r.upload(); err != nil {
		return nil, err
	}
	b := &Buffer{Label: label, Indices: append([]uint16(nil), indices...)}
	r.buffers = append(r.buffers, b)
	return b, nil
}

func (r *Recorder) upload() error {
	if r.FailUploadAfter >= 0 && r.uploads >= r.FailUploadAfter {
		return fmt.Errorf("upload %d: %w", r.uploads, ErrInjected)
	}
	r.uploads++
	return nil
}

// Buffers returns every buffer ever uploaded, released or not.
func (r *Recorder) Buffers() []*Buffer {
	return r.buffers
}

// LiveBuffers returns the number of buffers not yet released.
func (r *Recorder) LiveBuffers() int {
	n := 0
	for _, b := range r.buffers {
		if !b.Released {
			n++
		}
	}
	return n
}

// Programs returns every program compiled.
func (r *Recorder) Programs() []*Program {
	return r.programs
}

// Buffer is a recorded buffer.
type Buffer struct {
	Label    string
	Vertices []render.Vertex
	Indices  []uint16
	Released bool
	// Releases counts Release calls, so double releases are visible.
	Releases int
}

// Len returns the number of stored elements.
func (b *Buffer) Len() int {
	if b.Vertices != nil {
		return len(b.Vertices)
	}
	return len(b.Indices)
}

// Release marks the buffer released.
func (b *Buffer) Release() {
	b.Releases++
	b.Released = true
}

// Program is a recorded program.
type Program struct {
	Desc     render.ProgramDescriptor
	Released bool
}

// Kind returns the program kind.
func (p *Program) Kind() render.ProgramKind {
	return p.Desc.Kind
}

// Release marks the program released.
func (p *Program) Release() {
	p.Released = true
}

// Frame is a render.Frame that records what is drawn on it.
type Frame struct {
	Width, Height int

	Clears    []sketchpad.RGBA
	Draws     []render.DrawCall
	Presented bool

	// FailDraw makes Draw return this error.
	FailDraw error
	// FailPresent makes Present return this error.
	FailPresent error
}

// NewFrame creates a recording frame of the given size.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height}
}

// Size returns the frame size.
func (f *Frame) Size() (int, int) {
	return f.Width, f.Height
}

// Clear records the clear color.
func (f *Frame) Clear(c sketchpad.RGBA) {
	f.Clears = append(f.Clears, c)
}

// Draw records the call.
func (f *Frame) Draw(call render.DrawCall) error {
	if f.FailDraw != nil {
		return f.FailDraw
	}
	f.Draws = append(f.Draws, call)
	return nil
}

// Present marks the frame presented.
func (f *Frame) Present() error {
	if f.FailPresent != nil {
		return f.FailPresent
	}
	f.Presented = true
	return nil
}

// Labels returns the labels of the recorded draws, in order.
func (f *Frame) Labels() []string {
	labels := make([]string, len(f.Draws))
	for i, d := range f.Draws {
		labels[i] = d.Label
	}
	return labels
}

var (
	_ render.Backend = (*Recorder)(nil)
	_ render.Frame   = (*Frame)(nil)
)
