package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Resources are the renderer-side objects derived from a buffer pair
// (geometry and material). The engine does not collect them; Release must run.
type Resources interface {
	Release()
}

// Allocator turns a generated buffer into renderer resources.
type Allocator interface {
	Allocate(buf *ParticleBuffer, p Parameters) (Resources, error)
}

// Instance is one generated galaxy: the parameter snapshot it was built from,
// its buffers and the resources uploaded from them.
type Instance struct {
	ID        uuid.UUID
	Params    Parameters
	Buffer    *ParticleBuffer
	Resources Resources

	released bool
}

func (inst *Instance) Released() bool { return inst.released }

func (inst *Instance) release() {
	if inst.released {
		return
	}
	if inst.Resources != nil {
		inst.Resources.Release()
	}
	inst.released = true
}

// Scene owns the single displayed instance.
type Scene struct {
	current *Instance

	attached int
	released int
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) Current() *Instance { return s.current }

// Attached counts every instance ever attached.
func (s *Scene) Attached() int { return s.attached }

// Released counts every instance whose resources were freed.
func (s *Scene) Released() int { return s.released }

// Live is the number of instances holding resources right now; it is 0 or 1.
func (s *Scene) Live() int { return s.attached - s.released }

// Attach puts inst on display. The slot must be empty: attaching over a live
// instance would orphan its resources.
func (s *Scene) Attach(inst *Instance) {
	if s.current != nil {
		panic(fmt.Sprintf("scene: attach %s over live instance %s", inst.ID, s.current.ID))
	}
	if inst.released {
		panic(fmt.Sprintf("scene: attach released instance %s", inst.ID))
	}
	s.current = inst
	s.attached++
}

// Detach empties the slot and hands back the previous instance, if any.
func (s *Scene) Detach() *Instance {
	inst := s.current
	s.current = nil
	return inst
}

// Clear detaches and releases the displayed instance.
func (s *Scene) Clear() {
	if old := s.Detach(); old != nil {
		s.dispose(old)
	}
}

func (s *Scene) dispose(inst *Instance) {
	if inst.released {
		return
	}
	inst.release()
	s.released++
}

// Regenerate replaces the displayed instance with one built from p:
// detach the old instance, release its resources, generate, allocate, attach.
// When allocation fails the slot stays empty.
func Regenerate(s *Scene, p Parameters, rng RandomSource, alloc Allocator) (*Instance, error) {
	s.Clear()

	buf := Generate(p, rng)

	res, err := alloc.Allocate(buf, p)
	if err != nil {
		return nil, fmt.Errorf("allocate galaxy resources for %d particles: %w", p.Count, err)
	}

	inst := &Instance{
		ID:        uuid.New(),
		Params:    p,
		Buffer:    buf,
		Resources: res,
	}
	s.Attach(inst)
	return inst, nil
}

// CPUAllocator keeps the buffers on the CPU only. It is used by headless runs
// and by renderers that read the buffers directly.
type CPUAllocator struct {
	live int
}

type cpuResources struct {
	owner *CPUAllocator
	done  bool
}

func (r *cpuResources) Release() {
	if r.done {
		return
	}
	r.done = true
	r.owner.live--
}

func (a *CPUAllocator) Allocate(buf *ParticleBuffer, p Parameters) (Resources, error) {
	a.live++
	return &cpuResources{owner: a}, nil
}

// Live reports allocations not yet released.
func (a *CPUAllocator) Live() int { return a.live }
