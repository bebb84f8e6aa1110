package galaxy

import (
	"time"

	"github.com/gekko3d/galaxy/pointrt/rt/core"
)

// GalaxySettings holds the parameters being edited and the snapshot the
// displayed galaxy is built from.
type GalaxySettings struct {
	// Params is the working copy. Controls may change it freely during a
	// gesture; nothing regenerates until Apply.
	Params core.Parameters
	// Seed feeds every regeneration, so the same parameters give the same galaxy.
	Seed uint64

	applied core.Parameters
	pending bool
}

// Apply commits p: it is clamped, stored as the working copy and the applied
// snapshot, and one regeneration is scheduled for this frame.
func (s *GalaxySettings) Apply(p core.Parameters) {
	p = p.Clamp()
	s.Params = p
	s.applied = p
	s.pending = true
}

// Applied is the last committed snapshot.
func (s *GalaxySettings) Applied() core.Parameters { return s.applied }

func (s *GalaxySettings) Pending() bool { return s.pending }

// Reseed switches to a new seed and regenerates with the applied parameters.
func (s *GalaxySettings) Reseed(seed uint64) {
	s.Seed = seed
	s.pending = true
}

// GalaxyState owns the scene slot and the allocator that turns buffers into
// renderer resources.
type GalaxyState struct {
	Scene *core.Scene
	// Allocator is replaced by the renderer at install time.
	Allocator core.Allocator

	Generation   int
	LastDuration time.Duration
	LastErr      error

	cpu *core.CPUAllocator
}

func newGalaxyState() *GalaxyState {
	cpu := &core.CPUAllocator{}
	return &GalaxyState{
		Scene:     core.NewScene(),
		Allocator: cpu,
		cpu:       cpu,
	}
}

// ensureGalaxyState returns the GalaxyState resource, creating it if no module
// installed it yet. Renderers call it before swapping the allocator.
func ensureGalaxyState(app *App) *GalaxyState {
	if st, ok := resourceOf[GalaxyState](app); ok {
		return st
	}
	st := newGalaxyState()
	app.addResources(st)
	return st
}

// Current is the displayed instance or nil.
func (st *GalaxyState) Current() *core.Instance {
	return st.Scene.Current()
}

type GalaxyModule struct {
	// Params defaults to core.DefaultParameters when zero.
	Params core.Parameters
	// Seed defaults to a time-based seed when zero.
	Seed uint64
}

func (m GalaxyModule) Install(app *App, cmd *Commands) {
	params := m.Params
	if params == (core.Parameters{}) {
		params = core.DefaultParameters()
	}
	seed := m.Seed
	if seed == 0 {
		seed = core.SeedFromTime()
	}

	settings := &GalaxySettings{Seed: seed}
	settings.Apply(params)
	cmd.AddResources(settings)
	ensureGalaxyState(app)
	ensureInput(app)

	app.UseSystem(
		System(galaxyReseedSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(galaxyRegenerateSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.OnShutdown(galaxyShutdownSystem)
}

func galaxyReseedSystem(input *Input, settings *GalaxySettings) {
	if input.JustPressed[KeyR] {
		settings.Reseed(core.SeedFromTime())
	}
}

// galaxyRegenerateSystem rebuilds the galaxy once per pending apply, before
// the frame renders.
func galaxyRegenerateSystem(cmd *Commands, settings *GalaxySettings, state *GalaxyState) {
	if !settings.pending {
		return
	}
	settings.pending = false
	log := cmd.Logger()

	p := settings.applied
	start := time.Now()
	inst, err := core.Regenerate(state.Scene, p, core.NewRandomSource(settings.Seed), state.Allocator)
	state.LastDuration = time.Since(start)
	state.LastErr = err
	if err != nil {
		log.Errorf("Galaxy regeneration failed: %v", err)
		return
	}

	state.Generation++
	log.Infof("Galaxy %s: %d particles, %d branches, seed %d (%s)",
		inst.ID, p.Count, p.Branches, settings.Seed, state.LastDuration.Round(time.Microsecond))
	log.Debugf("Galaxy instances attached=%d released=%d live=%d",
		state.Scene.Attached(), state.Scene.Released(), state.Scene.Live())
}

func galaxyShutdownSystem(state *GalaxyState) {
	state.Scene.Clear()
}
