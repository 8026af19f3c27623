//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/render"
	"github.com/gogpu/wgpu/hal"
)

// fenceTimeout bounds the wait for a submitted frame.
const fenceTimeout = 5 * time.Second

// frameDraw is one recorded draw with its per-draw uniform resources.
type frameDraw struct {
	label      string
	program    *program
	vertices   hal.Buffer
	indices    hal.Buffer
	indexCount uint32
	uniforms   hal.Buffer
	bindGroup  hal.BindGroup
}

// Frame renders into a surface texture view for one redraw.
type Frame struct {
	backend       *Backend
	view          hal.TextureView
	width, height int
	clear         gputypes.Color
	draws         []frameDraw
	presented     bool
}

var _ render.Frame = (*Frame)(nil)

// NewFrame starts a frame targeting view, which must have the backend's
// format and the given size.
func (b *Backend) NewFrame(view hal.TextureView, width, height int) *Frame {
	return &Frame{backend: b, view: view, width: width, height: height}
}

// Size returns the surface size in pixels.
func (f *Frame) Size() (width, height int) { return f.width, f.height }

// Clear sets the load color of the render pass.
func (f *Frame) Clear(c sketchpad.RGBA) {
	f.clear = gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// Draw records call. Uniforms are uploaded now; drawing happens in Present.
func (f *Frame) Draw(call render.DrawCall) error {
	if f.presented {
		return ErrFramePresented
	}
	prog, ok := call.Program.(*program)
	if !ok || prog.released {
		return fmt.Errorf("%w: program %T", render.ErrForeignResource, call.Program)
	}
	vb, ok := call.Vertices.(*buffer)
	if !ok || vb.released {
		return fmt.Errorf("%w: vertex buffer %T", render.ErrForeignResource, call.Vertices)
	}
	ib, ok := call.Indices.(*buffer)
	if !ok || ib.released {
		return fmt.Errorf("%w: index buffer %T", render.ErrForeignResource, call.Indices)
	}
	if call.IndexCount < 0 || call.IndexCount > ib.n {
		return fmt.Errorf("gpu: index count %d exceeds buffer of %d", call.IndexCount, ib.n)
	}

	u := call.Uniforms
	if u.TargetHeight == 0 {
		u.TargetHeight = float32(f.height)
	}
	device := f.backend.device
	ub, err := f.backend.createAndUploadBuffer(call.Label+"_uniforms", u.Bytes(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  call.Label + "_bind_group",
		Layout: prog.uniforms,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: ub.NativeHandle(),
				Offset: 0,
				Size:   render.UniformsSize,
			}},
		},
	})
	if err != nil {
		device.DestroyBuffer(ub)
		return fmt.Errorf("create bind group: %w", err)
	}

	f.draws = append(f.draws, frameDraw{
		label:      call.Label,
		program:    prog,
		vertices:   vb.buf,
		indices:    ib.buf,
		indexCount: uint32(call.IndexCount),
		uniforms:   ub,
		bindGroup:  bg,
	})
	return nil
}

// Present encodes one render pass, submits it and waits for the GPU.
// Per-draw resources are released whether or not submission succeeds.
func (f *Frame) Present() error {
	if f.presented {
		return ErrFramePresented
	}
	f.presented = true
	defer f.releaseDraws()

	if f.view == nil || f.width <= 0 || f.height <= 0 {
		return nil
	}
	return f.encodeSubmit()
}

func (f *Frame) encodeSubmit() error {
	device := f.backend.device
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "sketchpad_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sketchpad_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "sketchpad_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: f.clear,
		}},
	})
	for _, d := range f.draws {
		if d.indexCount == 0 {
			continue
		}
		rp.SetPipeline(d.program.pipeline)
		rp.SetBindGroup(0, d.bindGroup, nil)
		rp.SetVertexBuffer(0, d.vertices, 0)
		rp.SetIndexBuffer(d.indices, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(d.indexCount, 1, 0, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := f.backend.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return waitResult(device.Wait(fence, 1, fenceTimeout))
}

// waitResult turns a fence wait outcome into an error. A wait that
// returns false without an error timed out.
func waitResult(ok bool, err error) error {
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w after %v", ErrGPUTimeout, fenceTimeout)
	}
	return nil
}

// releaseDraws destroys per-draw bind groups and uniform buffers.
func (f *Frame) releaseDraws() {
	device := f.backend.device
	for _, d := range f.draws {
		device.DestroyBindGroup(d.bindGroup)
		device.DestroyBuffer(d.uniforms)
	}
	f.draws = nil
}

// Draws returns the number of draw calls recorded and not yet presented.
func (f *Frame) Draws() int { return len(f.draws) }
