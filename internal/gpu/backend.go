//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/render"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilDevice is returned by NewBackend without a device or queue.
	ErrNilDevice = errors.New("gpu: nil device or queue")

	// ErrEmptyBuffer is returned when uploading zero elements.
	ErrEmptyBuffer = errors.New("gpu: empty buffer")

	// ErrFramePresented is returned when drawing into or presenting a frame
	// that has already been presented.
	ErrFramePresented = errors.New("gpu: frame already presented")

	// ErrGPUTimeout is returned when a submitted frame does not finish
	// within the fence timeout.
	ErrGPUTimeout = errors.New("gpu: timed out waiting for GPU")
)

// DefaultSurfaceFormat is the color target format used when none is given.
const DefaultSurfaceFormat = gputypes.TextureFormatBGRA8Unorm

// Backend implements render.Backend on a HAL device.
//
// The device and queue are borrowed: Backend never destroys them.
type Backend struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	programs int
	buffers  int
}

var _ render.Backend = (*Backend)(nil)

// NewBackend wraps device and queue. Pipelines target format, or
// DefaultSurfaceFormat when format is TextureFormatUndefined.
func NewBackend(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if format == gputypes.TextureFormatUndefined {
		format = DefaultSurfaceFormat
	}
	return &Backend{device: device, queue: queue, format: format}, nil
}

// Format returns the color target format of every pipeline.
func (b *Backend) Format() gputypes.TextureFormat { return b.format }

// SetLogger receives the logger from sketchpad.PropagateLogger.
func (b *Backend) SetLogger(l *slog.Logger) { setLogger(l) }

// LivePrograms returns the number of programs not yet released.
func (b *Backend) LivePrograms() int { return b.programs }

// LiveBuffers returns the number of buffers not yet released.
func (b *Backend) LiveBuffers() int { return b.buffers }

// CompileProgram compiles desc.Source to SPIR-V and builds a render
// pipeline with the uniform bind group and the alpha blend.
func (b *Backend) CompileProgram(desc render.ProgramDescriptor) (render.Program, error) {
	spirv, err := compileWGSL(desc.Source)
	if err != nil {
		return nil, &sketchpad.FatalInitError{
			Op:         "compile shader",
			Label:      desc.Label,
			Diagnostic: err.Error(),
			Err:        err,
		}
	}

	p, err := newProgram(b.device, desc, spirv, b.format)
	if err != nil {
		return nil, &sketchpad.FatalInitError{
			Op:    "create pipeline",
			Label: desc.Label,
			Err:   err,
		}
	}
	p.onRelease = func() { b.programs-- }
	b.programs++

	slogger().Debug("gpu: program ready",
		slog.String("label", desc.Label),
		slog.Int("spirv_words", len(spirv)))
	return p, nil
}

// UploadVertices creates a vertex buffer holding vertices.
func (b *Backend) UploadVertices(label string, vertices []render.Vertex) (render.Buffer, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBuffer, label)
	}
	buf, err := b.createAndUploadBuffer(label, render.VertexBytes(vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return b.track(buf, len(vertices)), nil
}

// UploadIndices creates an index buffer holding 16-bit indices.
func (b *Backend) UploadIndices(label string, indices []uint16) (render.Buffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBuffer, label)
	}
	buf, err := b.createAndUploadBuffer(label, render.IndexBytes(indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return b.track(buf, len(indices)), nil
}

func (b *Backend) track(buf hal.Buffer, n int) *buffer {
	b.buffers++
	return &buffer{
		device:    b.device,
		buf:       buf,
		n:         n,
		onRelease: func() { b.buffers-- },
	}
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (b *Backend) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
