package galaxy

import (
	"testing"

	"github.com/gekko3d/galaxy/pointrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrbitTestApp(t *testing.T) (*App, *Input, *core.OrbitCamera) {
	t.Helper()
	app := NewApp()
	app.UseModules(InputModule{}, OrbitControlsModule{})
	input, ok := resourceOf[Input](app)
	require.True(t, ok)
	cam, ok := resourceOf[core.OrbitCamera](app)
	require.True(t, ok)
	return app, input, cam
}

func TestOrbitControls_RightDragRotates(t *testing.T) {
	app, input, cam := newOrbitTestApp(t)
	input.resize(800, 600)
	input.moveMouse(100, 100)
	app.Step()
	yaw0 := cam.Yaw

	input.beginFrame()
	input.setKey(MouseButtonRight, true)
	input.moveMouse(200, 100)
	app.Step()

	assert.Less(t, cam.Yaw, yaw0, "dragging right orbits the camera to the left")
}

func TestOrbitControls_LeftDragDoesNotRotate(t *testing.T) {
	app, input, cam := newOrbitTestApp(t)
	input.resize(800, 600)
	input.moveMouse(100, 100)
	app.Step()
	yaw0, pitch0 := cam.Yaw, cam.Pitch

	input.beginFrame()
	input.setKey(MouseButtonLeft, true)
	input.moveMouse(300, 300)
	app.Step()

	assert.Equal(t, yaw0, cam.Yaw)
	assert.Equal(t, pitch0, cam.Pitch)
}

func TestOrbitControls_ScrollZooms(t *testing.T) {
	app, input, cam := newOrbitTestApp(t)
	app.Step()
	d0 := cam.Distance

	input.beginFrame()
	input.ScrollY = 2
	app.Step()
	assert.InDelta(t, d0*0.95*0.95, cam.Distance, 1e-4)

	input.beginFrame()
	input.ScrollY = -2
	app.Step()
	assert.InDelta(t, d0, cam.Distance, 1e-4)
}

func TestOrbitControls_ResizeRefreshesAspect(t *testing.T) {
	app, input, cam := newOrbitTestApp(t)

	input.resize(800, 400)
	app.Step()
	assert.InDelta(t, 2.0, cam.Aspect, 1e-6)

	input.beginFrame()
	input.PixelAspect = 2
	input.resize(80, 24)
	app.Step()
	assert.InDelta(t, 80.0/48.0, cam.Aspect, 1e-6)

	input.beginFrame()
	input.resize(0, 0)
	app.Step()
	assert.InDelta(t, 80.0/48.0, cam.Aspect, 1e-6, "minimised windows keep the last aspect")
}

func TestOrbitControls_ReusesExistingCamera(t *testing.T) {
	app := NewApp()
	cam := core.NewOrbitCamera()
	app.Commands().AddResources(cam)
	app.UseModules(OrbitControlsModule{})

	got, ok := resourceOf[core.OrbitCamera](app)
	require.True(t, ok)
	assert.Same(t, cam, got)
}
