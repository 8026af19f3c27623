//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/sketchpad/render"
	"github.com/gogpu/wgpu/hal"
)

// program is a compiled render pipeline plus the layouts it was built with.
type program struct {
	kind     render.ProgramKind
	label    string
	device   hal.Device
	module   hal.ShaderModule
	uniforms hal.BindGroupLayout
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline

	released  bool
	onRelease func()
}

// compileWGSL compiles WGSL source to SPIR-V words.
// SPIR-V is little-endian 32-bit words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("spir-v output of %d bytes is not word aligned", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// vertexLayout matches render.Vertex: position then coord, two float32x2.
func vertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: render.VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}

// alphaBlend is straight-alpha source-over.
func alphaBlend() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// newProgram creates the shader module, uniform layout and pipeline.
// On failure every object created so far is destroyed.
func newProgram(device hal.Device, desc render.ProgramDescriptor, spirv []uint32, format gputypes.TextureFormat) (*program, error) {
	p := &program{kind: desc.Kind, label: desc.Label, device: device}

	var err error
	p.module, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}

	p.uniforms, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: desc.Label + "_uniforms",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: render.UniformsSize,
				},
			},
		},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create bind group layout: %w", err)
	}

	p.layout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniforms},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	blend := alphaBlend()
	p.pipeline, err = device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.module,
			EntryPoint: desc.VertexEntry,
			Buffers:    []gputypes.VertexBufferLayout{vertexLayout()},
		},
		Fragment: &hal.FragmentState{
			Module:     p.module,
			EntryPoint: desc.FragmentEntry,
			Targets: []gputypes.ColorTargetState{{
				Format:    format,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	return p, nil
}

// Kind returns the program kind it was compiled for.
func (p *program) Kind() render.ProgramKind { return p.kind }

// Release destroys the pipeline and its layouts. Safe to call twice.
func (p *program) Release() {
	if p.released {
		return
	}
	p.released = true
	p.destroy()
	if p.onRelease != nil {
		p.onRelease()
	}
}

// destroy releases GPU objects in reverse creation order.
func (p *program) destroy() {
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		p.device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.uniforms != nil {
		p.device.DestroyBindGroupLayout(p.uniforms)
		p.uniforms = nil
	}
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}
