package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAllocator logs allocations and releases so ordering can be checked.
type recordingAllocator struct {
	events []string
	live   int
	fail   error
}

type recordingResources struct {
	owner *recordingAllocator
}

func (r *recordingResources) Release() {
	r.owner.events = append(r.owner.events, "release")
	r.owner.live--
}

func (a *recordingAllocator) Allocate(buf *ParticleBuffer, p Parameters) (Resources, error) {
	if a.fail != nil {
		return nil, a.fail
	}
	a.events = append(a.events, "allocate")
	a.live++
	return &recordingResources{owner: a}, nil
}

func smallParameters() Parameters {
	p := DefaultParameters()
	p.Count = 100
	return p
}

func TestRegenerate_SingleLiveInstance(t *testing.T) {
	scene := NewScene()
	alloc := &CPUAllocator{}
	rng := NewRandomSource(1)

	const n = 10
	var last *Instance
	for i := 0; i < n; i++ {
		inst, err := Regenerate(scene, smallParameters(), rng, alloc)
		require.NoError(t, err)
		if last != nil {
			assert.True(t, last.Released(), "previous instance must be released")
			assert.NotEqual(t, last.ID, inst.ID)
		}
		last = inst
	}

	assert.Same(t, last, scene.Current())
	assert.Equal(t, n, scene.Attached())
	assert.Equal(t, n-1, scene.Released())
	assert.Equal(t, 1, scene.Live())
	assert.Equal(t, 1, alloc.Live(), "allocator must not accumulate resources")
}

func TestRegenerate_ReleasesBeforeAllocating(t *testing.T) {
	scene := NewScene()
	alloc := &recordingAllocator{}
	rng := NewRandomSource(2)

	for i := 0; i < 3; i++ {
		_, err := Regenerate(scene, smallParameters(), rng, alloc)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"allocate", "release", "allocate", "release", "allocate"}, alloc.events)
	assert.Equal(t, 1, alloc.live)
}

func TestRegenerate_AllocationFailureLeavesSlotEmpty(t *testing.T) {
	scene := NewScene()
	alloc := &recordingAllocator{}
	rng := NewRandomSource(3)

	_, err := Regenerate(scene, smallParameters(), rng, alloc)
	require.NoError(t, err)

	boom := errors.New("out of device memory")
	alloc.fail = boom
	inst, err := Regenerate(scene, smallParameters(), rng, alloc)

	require.ErrorIs(t, err, boom)
	assert.Nil(t, inst)
	assert.Nil(t, scene.Current())
	assert.Equal(t, 0, alloc.live, "old instance is released even when the new one fails")
	assert.Equal(t, 0, scene.Live())
}

func TestRegenerate_KeepsParameterSnapshot(t *testing.T) {
	scene := NewScene()
	p := smallParameters()

	inst, err := Regenerate(scene, p, NewRandomSource(4), &CPUAllocator{})
	require.NoError(t, err)

	p.Count = 5000
	assert.Equal(t, 100, inst.Params.Count)
	assert.Equal(t, 100, inst.Buffer.Len())
}

func TestScene_AttachOverLiveInstancePanics(t *testing.T) {
	scene := NewScene()
	scene.Attach(&Instance{})

	assert.Panics(t, func() {
		scene.Attach(&Instance{})
	})
}

func TestScene_ClearReleasesOnce(t *testing.T) {
	scene := NewScene()
	alloc := &CPUAllocator{}

	_, err := Regenerate(scene, smallParameters(), NewRandomSource(5), alloc)
	require.NoError(t, err)

	scene.Clear()
	scene.Clear()

	assert.Nil(t, scene.Current())
	assert.Equal(t, 1, scene.Released())
	assert.Equal(t, 0, alloc.Live())
}
