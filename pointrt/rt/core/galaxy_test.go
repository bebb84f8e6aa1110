package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceSource replays values in a loop.
type sequenceSource struct {
	values []float64
	next   int
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func testParameters() Parameters {
	p := DefaultParameters()
	p.Count = 1000
	return p
}

func TestGenerate_BufferLengths(t *testing.T) {
	for _, count := range []int{1, 100, 1000, 12345} {
		p := testParameters()
		p.Count = count

		buf := Generate(p, NewRandomSource(1))

		assert.Len(t, buf.Positions, count*3, "positions for count=%d", count)
		assert.Len(t, buf.Colors, count*3, "colors for count=%d", count)
		assert.Equal(t, count, buf.Len())
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	p := testParameters()

	a := Generate(p, NewRandomSource(42))
	b := Generate(p, NewRandomSource(42))
	require.Equal(t, a.Positions, b.Positions)
	require.Equal(t, a.Colors, b.Colors)

	c := Generate(p, NewRandomSource(43))
	assert.NotEqual(t, a.Positions, c.Positions, "different seeds should give different clouds")
}

func TestGenerate_ConsumesSevenDrawsPerParticle(t *testing.T) {
	p := testParameters()
	p.Count = 10
	src := &sequenceSource{values: []float64{0.25}}

	Generate(p, src)

	assert.Equal(t, 70, src.next)
}

func TestPlaceParticle_ArmAssignmentByResidue(t *testing.T) {
	p := testParameters()
	p.Branches = 5
	rng := NewRandomSource(7)

	angles := make(map[int]float64)
	for i := 0; i < 50; i++ {
		pt := placeParticle(i, p, rng)
		residue := i % p.Branches
		if prev, ok := angles[residue]; ok {
			assert.Equal(t, prev, pt.branchAngle, "particle %d", i)
		} else {
			angles[residue] = pt.branchAngle
		}
	}

	require.Len(t, angles, 5)
	for residue, angle := range angles {
		assert.InDelta(t, float64(residue)/5*2*math.Pi, angle, 1e-12)
	}
}

func TestPlaceParticle_RadiusBounds(t *testing.T) {
	p := testParameters()
	p.Radius = 7.5
	rng := NewRandomSource(99)

	for i := 0; i < 5000; i++ {
		pt := placeParticle(i, p, rng)
		assert.GreaterOrEqual(t, pt.radius, 0.0)
		assert.LessOrEqual(t, pt.radius, p.Radius)
	}
}

func TestPlaceParticle_ColorEndpoints(t *testing.T) {
	p := testParameters()
	p.InsideColor = Color{R: 0.9, G: 0.3, B: 0.1}
	p.OutsideColor = Color{R: 0.1, G: 0.2, B: 0.7}

	center := placeParticle(0, p, &sequenceSource{values: []float64{0}})
	assert.Equal(t, p.InsideColor, center.color)

	// A draw of exactly 1 puts the particle on the rim.
	rim := placeParticle(0, p, &sequenceSource{values: []float64{1}})
	assert.Equal(t, p.Radius, rim.radius)
	assert.Equal(t, p.OutsideColor, rim.color)
}

func TestGenerate_ColorChannelsInRange(t *testing.T) {
	p := testParameters()
	p.InsideColor = Color{R: 1, G: 1, B: 1}
	p.OutsideColor = Color{R: 0, G: 0, B: 0}

	buf := Generate(p, NewRandomSource(5))
	for i, c := range buf.Colors {
		assert.True(t, c >= 0 && c <= 1, "channel %d out of range: %v", i, c)
	}
}

func TestPlaceParticle_ZeroRandomnessHasNoJitter(t *testing.T) {
	p := testParameters()
	p.Randomness = 0
	rng := NewRandomSource(11)

	for _, power := range []float64{1, 3, 10} {
		p.RandomnessPower = power
		for i := 0; i < 200; i++ {
			pt := placeParticle(i, p, rng)
			assert.Zero(t, pt.jitter[0])
			assert.Zero(t, pt.jitter[1])
			assert.Zero(t, pt.jitter[2])
			assert.Zero(t, pt.position[1])
		}
	}
}

func TestPlaceParticle_IndependentSignPerAxis(t *testing.T) {
	p := testParameters()
	p.Randomness = 1
	p.RandomnessPower = 1
	// radius, |x|, sign x (neg), |y|, sign y (pos), |z|, sign z (neg)
	src := &sequenceSource{values: []float64{0.5, 0.5, 0.1, 0.5, 0.9, 0.5, 0.2}}

	pt := placeParticle(0, p, src)

	r := 0.5 * p.Radius
	assert.InDelta(t, -0.5*r, pt.jitter[0], 1e-12)
	assert.InDelta(t, 0.5*r, pt.jitter[1], 1e-12)
	assert.InDelta(t, -0.5*r, pt.jitter[2], 1e-12)
}

func TestGenerate_FourParticlesTwoArms(t *testing.T) {
	p := testParameters()
	p.Count = 4
	p.Branches = 2
	p.Radius = 5
	p.Spin = 0
	p.Randomness = 0

	rng := NewRandomSource(3)
	pts := make([]particle, 0, 4)
	for i := 0; i < 4; i++ {
		pts = append(pts, placeParticle(i, p, rng))
	}
	assert.Equal(t, 0.0, pts[0].branchAngle)
	assert.Equal(t, 0.0, pts[2].branchAngle)
	assert.Equal(t, math.Pi, pts[1].branchAngle)
	assert.Equal(t, math.Pi, pts[3].branchAngle)

	buf := Generate(p, NewRandomSource(3))
	for i := 0; i < 4; i++ {
		assert.Zero(t, buf.Positions[i*3+1], "y of particle %d", i)
	}
	// Arm 0 lies on +X, arm 1 on -X.
	assert.GreaterOrEqual(t, buf.Positions[0], float32(0))
	assert.LessOrEqual(t, buf.Positions[3], float32(0))
}

func TestGenerate_SingleParticleBlend(t *testing.T) {
	p := testParameters()
	p.Count = 1
	p.Radius = 10
	p.Spin = 0
	p.Randomness = 0
	p.InsideColor = MustParseHex("#ff0000")
	p.OutsideColor = MustParseHex("#0000ff")

	buf := Generate(p, &sequenceSource{values: []float64{0.3}})

	assert.InDelta(t, 0.7, buf.Colors[0], 1e-6)
	assert.InDelta(t, 0.0, buf.Colors[1], 1e-6)
	assert.InDelta(t, 0.3, buf.Colors[2], 1e-6)
	assert.InDelta(t, 3.0, buf.Positions[0], 1e-6)
}
