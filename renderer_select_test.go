package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct{ installs int }

func (r *fakeRenderer) Install(app *App, cmd *Commands) { r.installs++ }

func TestParseRendererName(t *testing.T) {
	name, err := ParseRendererName(" Terminal ")
	require.NoError(t, err)
	assert.Equal(t, RendererTerminal, name)

	name, err = ParseRendererName("pointrt")
	require.NoError(t, err)
	assert.Equal(t, RendererPointRT, name)

	_, err = ParseRendererName("voxelrt")
	assert.Error(t, err)
}

func TestUseRenderer_SecondRendererPanics(t *testing.T) {
	app := NewApp()
	r := &fakeRenderer{}

	app.UseRenderer(RendererTerminal, r)
	app.UseRenderer(RendererTerminal, r)
	assert.Equal(t, 2, r.installs, "reinstalling the same renderer is allowed")

	assert.PanicsWithValue(t, "Multiple renderers installed: terminal and pointrt", func() {
		app.UseRenderer(RendererPointRT, &fakeRenderer{})
	})
}

func TestNewRenderer(t *testing.T) {
	mod, err := NewRenderer(RendererPointRT, RendererOptions{Width: 640, Height: 480, Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, PointRtModule{WindowWidth: 640, WindowHeight: 480, WindowTitle: "t"}, mod)

	mod, err = NewRenderer(RendererPointRT, RendererOptions{Debug: true})
	require.NoError(t, err)
	assert.True(t, mod.(PointRtModule).DebugMode)

	mod, err = NewRenderer(RendererTerminal, RendererOptions{})
	require.NoError(t, err)
	assert.IsType(t, TerminalModule{}, mod)
}
