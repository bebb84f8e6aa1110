package core

import (
	"math"
)

const (
	PositionStride = 3 // x, y, z
	ColorStride    = 3 // r, g, b
)

// ParticleBuffer holds the two parallel attribute arrays of a point cloud.
// Particle i lives at [3i, 3i+3) in both slices.
type ParticleBuffer struct {
	Positions []float32
	Colors    []float32
}

func NewParticleBuffer(count int) *ParticleBuffer {
	return &ParticleBuffer{
		Positions: make([]float32, count*PositionStride),
		Colors:    make([]float32, count*ColorStride),
	}
}

func (b *ParticleBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Positions) / PositionStride
}

// particle is the full per-index result, kept separate so the intermediate
// terms stay observable.
type particle struct {
	radius      float64
	branchAngle float64
	spinAngle   float64
	jitter      [3]float64
	position    [3]float64
	color       Color
}

// placeParticle draws, in order: radius, then magnitude and sign for x, y and z.
func placeParticle(i int, p Parameters, rng RandomSource) particle {
	var pt particle

	pt.radius = rng.Float64() * p.Radius
	pt.branchAngle = float64(i%p.Branches) / float64(p.Branches) * math.Pi * 2
	pt.spinAngle = pt.radius * p.Spin

	for axis := 0; axis < 3; axis++ {
		magnitude := math.Pow(rng.Float64(), p.RandomnessPower)
		sign := 1.0
		if rng.Float64() < 0.5 {
			sign = -1.0
		}
		pt.jitter[axis] = magnitude * sign * p.Randomness * pt.radius
	}

	angle := pt.branchAngle + pt.spinAngle
	pt.position = [3]float64{
		math.Cos(angle)*pt.radius + pt.jitter[0],
		pt.jitter[1],
		math.Sin(angle)*pt.radius + pt.jitter[2],
	}

	pt.color = Mix(p.InsideColor, p.OutsideColor, pt.radius/p.Radius)
	return pt
}

// Generate builds a fresh buffer pair for p. It keeps no state between calls;
// every random draw comes from rng. The caller guarantees Count >= 1,
// Branches >= 1 and Radius > 0.
func Generate(p Parameters, rng RandomSource) *ParticleBuffer {
	buf := NewParticleBuffer(p.Count)

	for i := 0; i < p.Count; i++ {
		pt := placeParticle(i, p, rng)

		i3 := i * 3
		buf.Positions[i3] = float32(pt.position[0])
		buf.Positions[i3+1] = float32(pt.position[1])
		buf.Positions[i3+2] = float32(pt.position[2])

		buf.Colors[i3] = float32(pt.color.R)
		buf.Colors[i3+1] = float32(pt.color.G)
		buf.Colors[i3+2] = float32(pt.color.B)
	}

	return buf
}
