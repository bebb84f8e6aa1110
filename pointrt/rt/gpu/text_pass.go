package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/galaxy/pointrt/rt/core"
	"github.com/gekko3d/galaxy/pointrt/rt/shaders"
)

// TextRenderPass draws overlay text from a glyph atlas.
type TextRenderPass struct {
	Device       *wgpu.Device
	Pipeline     *wgpu.RenderPipeline
	Atlas        *wgpu.Texture
	AtlasView    *wgpu.TextureView
	Sampler      *wgpu.Sampler
	BindGroup    *wgpu.BindGroup
	VertexBuffer *wgpu.Buffer
	VertexCount  uint32
}

func NewTextRenderPass(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, tr *core.TextRenderer) (*TextRenderPass, error) {
	w, h := tr.AtlasImage.Bounds().Dx(), tr.AtlasImage.Bounds().Dy()
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "TextAtlas",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	queue.WriteTexture(tex.AsImageCopy(), tr.AtlasImage.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(w),
		RowsPerImage: uint32(h),
	}, &wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1})

	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, err
	}

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}

	textMod, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "TextShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.TextWGSL},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "TextPipeline",
		Vertex: wgpu.VertexState{
			Module:     textMod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(core.TextVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     textMod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOne,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "TextBG",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		return nil, err
	}

	return &TextRenderPass{
		Device:    device,
		Pipeline:  pipeline,
		Atlas:     tex,
		AtlasView: view,
		Sampler:   sampler,
		BindGroup: bg,
	}, nil
}

// Update uploads this frame's glyph quads, growing the vertex buffer when needed.
func (p *TextRenderPass) Update(queue *wgpu.Queue, vertices []core.TextVertex) error {
	p.VertexCount = 0
	if len(vertices) == 0 {
		return nil
	}

	vSize := uint64(len(vertices) * int(unsafe.Sizeof(core.TextVertex{})))
	if p.VertexBuffer == nil || p.VertexBuffer.GetSize() < vSize {
		if p.VertexBuffer != nil {
			p.VertexBuffer.Release()
			p.VertexBuffer = nil
		}
		vb, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "TextVB",
			Size:  vSize,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		p.VertexBuffer = vb
	}
	queue.WriteBuffer(p.VertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), vSize))
	p.VertexCount = uint32(len(vertices))
	return nil
}

func (p *TextRenderPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.VertexCount == 0 || p.VertexBuffer == nil {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, p.VertexBuffer.GetSize())
	pass.Draw(p.VertexCount, 1, 0, 0)
}

func (p *TextRenderPass) Release() {
	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
	}
	if p.Sampler != nil {
		p.Sampler.Release()
	}
	if p.AtlasView != nil {
		p.AtlasView.Release()
	}
	if p.Atlas != nil {
		p.Atlas.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
