package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	minPitch = -math32.Pi/2 + 0.01
	maxPitch = math32.Pi/2 - 0.01
)

// OrbitCamera circles Target on a sphere (Y up). Input adds to the pending
// deltas; Update bleeds them in by DampingFactor every frame.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // radians, around +Y, 0 looks down -Z from +Z
	Pitch    float32 // radians

	Fov    float32 // degrees, vertical
	Aspect float32
	Near   float32
	Far    float32

	Damping       bool
	DampingFactor float32
	MinDistance   float32
	MaxDistance   float32

	deltaYaw   float32
	deltaPitch float32
	zoomScale  float32
}

// NewOrbitCamera places the camera at (3, 3, 3) looking at the origin.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		Fov:           75,
		Aspect:        1,
		Near:          0.1,
		Far:           100,
		Damping:       true,
		DampingFactor: 0.05,
		MinDistance:   0.5,
		MaxDistance:   50,
		zoomScale:     1,
	}
	c.LookFrom(mgl32.Vec3{3, 3, 3})
	return c
}

// LookFrom derives Distance, Yaw and Pitch from a world position.
func (c *OrbitCamera) LookFrom(pos mgl32.Vec3) {
	off := pos.Sub(c.Target)
	c.Distance = off.Len()
	if c.Distance == 0 {
		c.Distance = 1
		return
	}
	c.Yaw = math32.Atan2(off.X(), off.Z())
	c.Pitch = math32.Asin(off.Y() / c.Distance)
}

// SetViewport refreshes the aspect ratio. Zero sizes (minimised windows) are ignored.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *OrbitCamera) Rotate(dYaw, dPitch float32) {
	c.deltaYaw += dYaw
	c.deltaPitch += dPitch
}

// Zoom multiplies the distance by scale (<1 moves closer).
func (c *OrbitCamera) Zoom(scale float32) {
	if scale > 0 {
		c.zoomScale *= scale
	}
}

// Update applies pending input. It must run once per frame.
func (c *OrbitCamera) Update() {
	factor := float32(1)
	if c.Damping {
		factor = c.DampingFactor
	}

	c.Yaw += c.deltaYaw * factor
	c.Pitch += c.deltaPitch * factor
	c.Pitch = clampf(c.Pitch, minPitch, maxPitch)

	c.Distance *= c.zoomScale
	c.Distance = clampf(c.Distance, c.MinDistance, c.MaxDistance)

	if c.Damping {
		c.deltaYaw *= 1 - factor
		c.deltaPitch *= 1 - factor
	} else {
		c.deltaYaw = 0
		c.deltaPitch = 0
	}
	c.zoomScale = 1
}

func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return c.Target.Add(mgl32.Vec3{
		cp * math32.Sin(c.Yaw),
		math32.Sin(c.Pitch),
		cp * math32.Cos(c.Yaw),
	}.Mul(c.Distance))
}

func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
