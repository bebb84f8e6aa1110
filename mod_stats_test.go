package galaxy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_LinesReflectGalaxy(t *testing.T) {
	app, _, state := newGalaxyTestApp(t, StatsModule{})
	app.Step()
	app.Step()

	overlay, ok := resourceOf[Overlay](app)
	require.True(t, ok)
	items := overlay.Items()
	require.Len(t, items, 4)
	assert.Contains(t, items[1].Text, "particles 200")
	assert.Contains(t, items[1].Text, "generation 1")
	assert.Contains(t, items[2].Text, "live 1")
	assert.Equal(t, [2]float32{0, 1}, items[1].Position)

	state.LastErr = errors.New("boom")
	stats, _ := resourceOf[Stats](app)
	assert.Equal(t, "error: boom", stats.lines(state)[3])
}

func TestStats_HiddenDrawsNothing(t *testing.T) {
	app, _, _ := newGalaxyTestApp(t, StatsModule{Hidden: true})
	app.Step()

	overlay, _ := resourceOf[Overlay](app)
	assert.Empty(t, overlay.Items())
}
