package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrbitCamera_StartsAtDemoPosition(t *testing.T) {
	cam := NewOrbitCamera()

	pos := cam.Position()
	assert.InDelta(t, 3, pos.X(), 1e-4)
	assert.InDelta(t, 3, pos.Y(), 1e-4)
	assert.InDelta(t, 3, pos.Z(), 1e-4)
}

func TestOrbitCamera_SetViewport(t *testing.T) {
	cam := NewOrbitCamera()

	cam.SetViewport(1920, 1080)
	assert.InDelta(t, 16.0/9.0, cam.Aspect, 1e-6)

	cam.SetViewport(0, 0)
	assert.InDelta(t, 16.0/9.0, cam.Aspect, 1e-6, "zero size keeps the last aspect")
}

func TestOrbitCamera_DampedRotationConverges(t *testing.T) {
	cam := NewOrbitCamera()
	startYaw := cam.Yaw

	cam.Rotate(1, 0)
	cam.Update()
	assert.InDelta(t, startYaw+0.05, cam.Yaw, 1e-5, "first frame applies the damping factor only")

	for i := 0; i < 500; i++ {
		cam.Update()
	}
	assert.InDelta(t, startYaw+1, cam.Yaw, 1e-3)
}

func TestOrbitCamera_UndampedAppliesImmediately(t *testing.T) {
	cam := NewOrbitCamera()
	cam.Damping = false
	startYaw := cam.Yaw

	cam.Rotate(0.5, 0)
	cam.Update()
	cam.Update()

	assert.InDelta(t, startYaw+0.5, cam.Yaw, 1e-6)
}

func TestOrbitCamera_PitchAndDistanceClamped(t *testing.T) {
	cam := NewOrbitCamera()
	cam.Damping = false

	cam.Rotate(0, 10)
	cam.Zoom(1000)
	cam.Update()

	assert.LessOrEqual(t, cam.Pitch, float32(maxPitch))
	assert.Equal(t, cam.MaxDistance, cam.Distance)
}

func TestOrbitCamera_ViewLooksAtTarget(t *testing.T) {
	cam := NewOrbitCamera()
	cam.Target = mgl32.Vec3{1, 0, 0}
	cam.LookFrom(mgl32.Vec3{1, 0, 5})

	view := cam.ViewMatrix()
	target := view.Mul4x1(cam.Target.Vec4(1))

	// In view space the target sits straight ahead on -Z.
	assert.InDelta(t, 0, target.X(), 1e-5)
	assert.InDelta(t, 0, target.Y(), 1e-5)
	assert.InDelta(t, -5, target.Z(), 1e-5)
}
