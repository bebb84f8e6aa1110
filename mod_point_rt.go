package galaxy

import (
	"strings"

	app_rt "github.com/gekko3d/galaxy/pointrt/rt/app"
)

// PointRtModule draws the galaxy as additive point sprites through wgpu in a
// glfw window.
type PointRtModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	// FixedSize disables size attenuation: points keep their pixel size at any distance.
	FixedSize bool
	DebugMode bool
}

func (mod PointRtModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererPointRT))
	windowState := ensureWindowResource(app, mod.WindowWidth, mod.WindowHeight, mod.WindowTitle)
	galaxy := ensureGalaxyState(app)
	camera := ensureOrbitCamera(app)
	input := ensureInput(app)
	overlay := ensureOverlay(app)

	RtApp := app_rt.NewApp(windowState.windowGlfw, galaxy.Scene, camera)
	RtApp.Log = app.Logger()
	RtApp.DebugMode = mod.DebugMode
	if err := RtApp.Init(); err != nil {
		panic(err)
	}
	RtApp.Points.SizeAttenuation = !mod.FixedSize

	state := &PointRtState{RtApp: RtApp, window: windowState}
	cmd.AddResources(state)

	// Buffers are uploaded to the GPU from now on.
	galaxy.Allocator = RtApp

	if w, _ := state.MeasureText("M", 1); w > 0 {
		overlay.CharWidth = w
		overlay.LineHeight = state.GetLineHeight(1)
	}
	input.PixelAspect = 1
	input.resize(state.WindowSize())

	app.UseSystem(
		System(glfwInputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(pointRtResizeSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(pointRtSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(pointRtRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	app.OnShutdown(pointRtShutdownSystem)
}

func pointRtResizeSystem(input *Input, state *PointRtState, quit *Quit) {
	if input.Resized {
		state.RtApp.Resize(input.WindowWidth, input.WindowHeight)
	}
	if input.JustPressed[KeyEscape] {
		quit.Request("escape pressed")
	}
}

// pointRtSystem queues the overlay and uploads camera and text. It runs after
// regeneration so the frame shows the new instance.
func pointRtSystem(state *PointRtState, overlay *Overlay) {
	rt := state.RtApp
	rt.ClearText()
	for _, item := range overlay.Items() {
		rt.DrawText(item.Text, item.Position[0], item.Position[1], item.Scale, item.Color)
	}
	if rt.DebugMode {
		y := float32(rt.Config.Height) - 8*state.GetLineHeight(1)
		for i, line := range strings.Split(strings.TrimRight(state.ProfilerStats(), "\n"), "\n") {
			rt.DrawText(line, 0, y+float32(i)*state.GetLineHeight(1), 1, [4]float32{0.7, 0.7, 1, 1})
		}
	}
	rt.Update()
}

func pointRtRenderSystem(state *PointRtState) {
	state.RtApp.Render()
}

// pointRtShutdownSystem frees the GPU instance before the device it lives on.
func pointRtShutdownSystem(state *PointRtState, galaxy *GalaxyState) {
	galaxy.Scene.Clear()
	state.RtApp.Release()
	state.window.destroy()
}
