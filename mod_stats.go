package galaxy

import (
	"fmt"

	app_rt "github.com/gekko3d/galaxy/pointrt/rt/app"
)

// StatsModule draws frame rate, frame time and galaxy counters in the top-left
// corner of the overlay.
type StatsModule struct {
	Hidden bool
}

type Stats struct {
	Frame   app_rt.FrameStats
	Visible bool
}

var statsColor = [4]float32{0.4, 1, 0.4, 1}

func (m StatsModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Stats{Visible: !m.Hidden})
	ensureOverlay(app)
	ensureTime(app)
	ensureGalaxyState(app)

	app.UseSystem(
		System(statsSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

func statsSystem(t *Time, stats *Stats, state *GalaxyState, overlay *Overlay) {
	stats.Frame.Tick(float64(t.Time.UnixNano()) / 1e9)
	if !stats.Visible {
		return
	}
	for i, line := range stats.lines(state) {
		overlay.Print(0, i, line, statsColor)
	}
}

func (stats *Stats) lines(state *GalaxyState) []string {
	count := 0
	if inst := state.Current(); inst != nil {
		count = inst.Buffer.Len()
	}
	lines := []string{
		fmt.Sprintf("%5.1f fps  %6.2f ms", stats.Frame.FPS, stats.Frame.FrameMs),
		fmt.Sprintf("particles %d  generation %d", count, state.Generation),
		fmt.Sprintf("instances live %d  released %d", state.Scene.Live(), state.Scene.Released()),
	}
	if state.LastErr != nil {
		lines = append(lines, "error: "+state.LastErr.Error())
	} else {
		lines = append(lines, fmt.Sprintf("generated in %s", state.LastDuration))
	}
	return lines
}
