package app

import (
	"fmt"
	"log"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/galaxy/pointrt/rt/core"
	"github.com/gekko3d/galaxy/pointrt/rt/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Logger is the subset of the engine logger the renderer reports through.
type Logger interface {
	Errorf(format string, args ...any)
}

type stdLogger struct{}

func (stdLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

// App owns the wgpu device and surface and draws the galaxy scene plus
// overlay text every frame.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Points *gpu.PointsRenderPass
	Text   *gpu.TextRenderPass

	Scene  *core.Scene
	Camera *core.OrbitCamera

	TextRenderer *core.TextRenderer
	TextItems    []core.TextItem

	ClearColor wgpu.Color
	Profiler   *Profiler
	DebugMode  bool
	Log        Logger
}

func NewApp(window *glfw.Window, scene *core.Scene, camera *core.OrbitCamera) *App {
	return &App{
		Window:     window,
		Scene:      scene,
		Camera:     camera,
		ClearColor: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		Profiler:   NewProfiler(),
		Log:        stdLogger{},
	}
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(adapter, a.Device, a.Config)
	a.Camera.SetViewport(width, height)

	a.Points, err = gpu.NewPointsRenderPass(a.Device, a.Config.Format)
	if err != nil {
		return fmt.Errorf("points pass: %w", err)
	}

	a.TextRenderer, err = core.NewTextRenderer(18)
	if err != nil {
		a.Log.Errorf("text renderer disabled: %v", err)
		return nil
	}
	a.Text, err = gpu.NewTextRenderPass(a.Device, a.Queue, a.Config.Format, a.TextRenderer)
	if err != nil {
		a.Log.Errorf("text pass disabled: %v", err)
		a.Text = nil
	}
	return nil
}

// Allocate uploads a generated buffer as points geometry and material.
func (a *App) Allocate(buf *core.ParticleBuffer, p core.Parameters) (core.Resources, error) {
	a.Profiler.BeginScope("upload")
	defer a.Profiler.EndScope("upload")
	return a.Points.Allocate(buf, p)
}

// Resize reconfigures the surface and refreshes the camera aspect.
// Minimised windows report 0x0 and are skipped.
func (a *App) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if a.Config.Width == uint32(w) && a.Config.Height == uint32(h) {
		return
	}
	a.Config.Width = uint32(w)
	a.Config.Height = uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	a.Camera.SetViewport(w, h)
}

// Update uploads the camera and the text queued since the last ClearText.
func (a *App) Update() {
	a.Points.UpdateCamera(a.Queue, a.Camera.ViewProjection(), a.Config.Width, a.Config.Height)

	if a.Text == nil {
		return
	}
	vertices := a.TextRenderer.BuildVertices(a.TextItems, int(a.Config.Width), int(a.Config.Height))
	if err := a.Text.Update(a.Queue, vertices); err != nil {
		a.Log.Errorf("text upload: %v", err)
	}
}

func (a *App) ClearText() {
	a.TextItems = a.TextItems[:0]
}

func (a *App) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	a.TextItems = append(a.TextItems, core.TextItem{
		Text:     text,
		Position: [2]float32{x, y},
		Scale:    scale,
		Color:    color,
	})
}

func (a *App) Render() {
	a.Profiler.BeginScope("render")
	defer a.Profiler.EndScope("render")

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		a.Log.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		a.Log.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		a.Log.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: a.ClearColor,
		}},
	})

	if inst := a.Scene.Current(); inst != nil {
		a.Points.Draw(rPass, inst.Resources)
		a.Profiler.SetCount("particles", inst.Buffer.Len())
	}
	if a.Text != nil {
		a.Text.Draw(rPass)
	}

	if err := rPass.End(); err != nil {
		a.Log.Errorf("render pass End failed: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		a.Log.Errorf("encoder Finish failed: %v", err)
		return
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()
}

// Release frees the device-level objects. Scene instances must be cleared first.
func (a *App) Release() {
	if a.Text != nil {
		a.Text.Release()
	}
	if a.Points != nil {
		a.Points.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}
