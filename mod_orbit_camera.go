package galaxy

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/galaxy/pointrt/rt/core"
)

// OrbitControlsModule drives the shared core.OrbitCamera resource from Input.
type OrbitControlsModule struct {
	RotateSpeed float32 // full turns per viewport height dragged
	ZoomSpeed   float32
	KeySpeed    float32 // radians per second for keyboard rotation
}

type OrbitControls struct {
	RotateSpeed float32
	ZoomSpeed   float32
	KeySpeed    float32
}

func (m OrbitControlsModule) Install(app *App, cmd *Commands) {
	ctl := &OrbitControls{RotateSpeed: m.RotateSpeed, ZoomSpeed: m.ZoomSpeed, KeySpeed: m.KeySpeed}
	if ctl.RotateSpeed == 0 {
		ctl.RotateSpeed = 1
	}
	if ctl.ZoomSpeed == 0 {
		ctl.ZoomSpeed = 1
	}
	if ctl.KeySpeed == 0 {
		ctl.KeySpeed = 1.5
	}
	cmd.AddResources(ctl)
	ensureOrbitCamera(app)
	ensureInput(app)
	ensureTime(app)

	app.UseSystem(
		System(orbitControlsSystem).
			InStage(Update).
			RunAlways(),
	)
}

// ensureOrbitCamera returns the camera resource, creating the default one.
func ensureOrbitCamera(app *App) *core.OrbitCamera {
	if cam, ok := resourceOf[core.OrbitCamera](app); ok {
		return cam
	}
	cam := core.NewOrbitCamera()
	app.addResources(cam)
	return cam
}

func orbitControlsSystem(input *Input, cam *core.OrbitCamera, ctl *OrbitControls, t *Time) {
	dt := float32(t.Seconds())

	if input.Resized && input.WindowWidth > 0 && input.WindowHeight > 0 {
		aspect := input.PixelAspect
		if aspect <= 0 {
			aspect = 1
		}
		cam.SetViewport(input.WindowWidth, int(float64(input.WindowHeight)*aspect))
	}

	if input.Pressed[MouseButtonRight] && input.WindowHeight > 0 {
		// A drag across the full height turns the camera once, as OrbitControls does.
		h := float32(input.WindowHeight)
		cam.Rotate(
			-2*math32.Pi*float32(input.MouseDeltaX)/h*ctl.RotateSpeed,
			2*math32.Pi*float32(input.MouseDeltaY)/h*ctl.RotateSpeed,
		)
	}

	step := ctl.KeySpeed * dt
	if input.Pressed[KeyShift] {
		if input.Pressed[KeyW] {
			cam.Rotate(0, step)
		}
		if input.Pressed[KeyS] {
			cam.Rotate(0, -step)
		}
	} else {
		if input.Pressed[KeyW] || input.Pressed[KeyEqual] || input.Pressed[KeyKPPlus] {
			cam.Zoom(1 - ctl.ZoomSpeed*dt)
		}
		if input.Pressed[KeyS] || input.Pressed[KeyMinus] || input.Pressed[KeyKPMinus] {
			cam.Zoom(1 + ctl.ZoomSpeed*dt)
		}
	}
	if input.Pressed[KeyA] {
		cam.Rotate(step, 0)
	}
	if input.Pressed[KeyD] {
		cam.Rotate(-step, 0)
	}

	if input.ScrollY != 0 {
		cam.Zoom(math32.Pow(0.95, float32(input.ScrollY)*ctl.ZoomSpeed))
	}

	cam.Update()
}
