package galaxy

import (
	"time"
)

type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

// Seconds is Dt as float seconds, the unit the camera and panel work in.
func (t *Time) Seconds() float64 {
	return t.Dt.Seconds()
}

type TimeModule struct{}

// Install is a no-op when a Time resource already exists.
func (mod TimeModule) Install(app *App, cmd *Commands) {
	if _, ok := resourceOf[Time](app); ok {
		return
	}
	cmd.AddResources(&Time{
		Time: time.Now(),
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}

// ensureTime returns the Time resource, installing TimeModule if needed.
func ensureTime(app *App) *Time {
	TimeModule{}.Install(app, app.Commands())
	t, _ := resourceOf[Time](app)
	return t
}
