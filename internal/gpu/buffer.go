//go:build !nogpu

package gpu

import "github.com/gogpu/wgpu/hal"

// buffer is a vertex or index buffer owned by a Backend.
type buffer struct {
	device    hal.Device
	buf       hal.Buffer
	n         int
	released  bool
	onRelease func()
}

// Len returns the number of vertices or indices.
func (b *buffer) Len() int { return b.n }

// Release destroys the GPU buffer. Safe to call twice.
func (b *buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.device.DestroyBuffer(b.buf)
	b.buf = nil
	if b.onRelease != nil {
		b.onRelease()
	}
}
