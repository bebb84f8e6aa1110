package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/galaxy/pointrt/rt/core"
	"github.com/gekko3d/galaxy/pointrt/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// verticesPerPoint is the quad every particle is expanded into.
const verticesPerPoint = 6

// CameraUniform matches the WGSL Camera struct.
type CameraUniform struct {
	ViewProj mgl32.Mat4
	Viewport [4]float32
}

// MaterialUniform matches the WGSL Material struct.
type MaterialUniform struct {
	Size        float32
	Attenuation float32
	Pad         [2]float32
}

// PointsResources is the geometry (position and color buffers) and the
// material (uniform buffer and its bind group) of one galaxy instance.
type PointsResources struct {
	Positions         *wgpu.Buffer
	Colors            *wgpu.Buffer
	Material          *wgpu.Buffer
	MaterialBindGroup *wgpu.BindGroup
	Count             uint32

	pass     *PointsRenderPass
	released bool
}

// Release frees the GPU objects. Calling it twice is a no-op.
func (r *PointsResources) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.MaterialBindGroup != nil {
		r.MaterialBindGroup.Release()
	}
	if r.Material != nil {
		r.Material.Release()
	}
	if r.Colors != nil {
		r.Colors.Release()
	}
	if r.Positions != nil {
		r.Positions.Release()
	}
	if r.pass != nil {
		r.pass.live--
	}
}

type PointsRenderPass struct {
	Device          *wgpu.Device
	Pipeline        *wgpu.RenderPipeline
	CameraBGL       *wgpu.BindGroupLayout
	MaterialBGL     *wgpu.BindGroupLayout
	CameraBuffer    *wgpu.Buffer
	CameraBindGroup *wgpu.BindGroup

	// SizeAttenuation makes Size a world-space extent instead of pixels.
	SizeAttenuation bool

	live int
}

func NewPointsRenderPass(device *wgpu.Device, format wgpu.TextureFormat) (*PointsRenderPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "PointsShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, err
	}

	cameraSize := uint64(unsafe.Sizeof(CameraUniform{}))
	materialSize := uint64(unsafe.Sizeof(MaterialUniform{}))

	// Group 0: camera
	cameraBGL, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "PointsCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	// Group 1: material, one per instance
	materialBGL, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "PointsMaterialBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: materialSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "PointsPipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraBGL, materialBGL},
	})
	if err != nil {
		return nil, err
	}

	stride := uint64(core.PositionStride * 4)
	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "PointsPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: stride,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: uint64(core.ColorStride * 4),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					// Additive: overlapping particles brighten each other.
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil, // particles never write depth
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	cameraBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "PointsCameraUB",
		Size:  cameraSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	cameraBG, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "PointsCameraBG",
		Layout: cameraBGL,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: cameraBuffer, Size: cameraSize},
		},
	})
	if err != nil {
		return nil, err
	}

	return &PointsRenderPass{
		Device:          device,
		Pipeline:        pipeline,
		CameraBGL:       cameraBGL,
		MaterialBGL:     materialBGL,
		CameraBuffer:    cameraBuffer,
		CameraBindGroup: cameraBG,
		SizeAttenuation: true,
	}, nil
}

// UpdateCamera uploads the view-projection and viewport used to size sprites.
func (p *PointsRenderPass) UpdateCamera(queue *wgpu.Queue, viewProj mgl32.Mat4, width, height uint32) {
	u := CameraUniform{
		ViewProj: viewProj,
		Viewport: [4]float32{float32(width), float32(height), 0, 0},
	}
	queue.WriteBuffer(p.CameraBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&u)), unsafe.Sizeof(u)))
}

// Allocate uploads buf into fresh vertex buffers and builds the material.
// Nothing is reused from earlier instances.
func (p *PointsRenderPass) Allocate(buf *core.ParticleBuffer, params core.Parameters) (core.Resources, error) {
	count := buf.Len()
	if count == 0 {
		return nil, fmt.Errorf("empty particle buffer")
	}
	queue := p.Device.GetQueue()
	res := &PointsResources{Count: uint32(count)}

	var err error
	res.Positions, err = p.createVertexBuffer("GalaxyPositionsVB", buf.Positions)
	if err != nil {
		res.Release()
		return nil, fmt.Errorf("positions buffer: %w", err)
	}
	res.Colors, err = p.createVertexBuffer("GalaxyColorsVB", buf.Colors)
	if err != nil {
		res.Release()
		return nil, fmt.Errorf("colors buffer: %w", err)
	}

	mat := MaterialUniform{Size: float32(params.Size)}
	if p.SizeAttenuation {
		mat.Attenuation = 1
	} else {
		// pixel sized sprites: scale the tiny world size into something visible
		mat.Size = float32(params.Size) * 100
	}
	matSize := uint64(unsafe.Sizeof(mat))
	res.Material, err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "GalaxyMaterialUB",
		Size:  matSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		res.Release()
		return nil, fmt.Errorf("material buffer: %w", err)
	}
	queue.WriteBuffer(res.Material, 0, unsafe.Slice((*byte)(unsafe.Pointer(&mat)), matSize))

	res.MaterialBindGroup, err = p.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "GalaxyMaterialBG",
		Layout: p.MaterialBGL,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: res.Material, Size: matSize},
		},
	})
	if err != nil {
		res.Release()
		return nil, fmt.Errorf("material bind group: %w", err)
	}

	res.pass = p
	p.live++
	return res, nil
}

func (p *PointsRenderPass) createVertexBuffer(label string, data []float32) (*wgpu.Buffer, error) {
	size := uint64(len(data) * 4)
	b, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	p.Device.GetQueue().WriteBuffer(b, 0, wgpu.ToBytes(data))
	return b, nil
}

// Live counts allocations that have not been released.
func (p *PointsRenderPass) Live() int { return p.live }

func (p *PointsRenderPass) Draw(pass *wgpu.RenderPassEncoder, res core.Resources) {
	r, ok := res.(*PointsResources)
	if !ok || r == nil || r.released || r.Count == 0 {
		return
	}

	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.CameraBindGroup, nil)
	pass.SetBindGroup(1, r.MaterialBindGroup, nil)
	pass.SetVertexBuffer(0, r.Positions, 0, r.Positions.GetSize())
	pass.SetVertexBuffer(1, r.Colors, 0, r.Colors.GetSize())
	pass.Draw(verticesPerPoint, r.Count, 0, 0)
}

func (p *PointsRenderPass) Release() {
	if p.CameraBindGroup != nil {
		p.CameraBindGroup.Release()
	}
	if p.CameraBuffer != nil {
		p.CameraBuffer.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
