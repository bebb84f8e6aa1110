package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_EdgesLastOneFrame(t *testing.T) {
	input := &Input{}

	input.beginFrame()
	input.setKey(KeyRight, true)
	assert.True(t, input.JustPressed[KeyRight])
	assert.True(t, input.Pressed[KeyRight])

	input.beginFrame()
	input.setKey(KeyRight, true)
	assert.False(t, input.JustPressed[KeyRight], "held keys do not press again")
	assert.True(t, input.Pressed[KeyRight])

	input.beginFrame()
	input.setKey(KeyRight, false)
	assert.True(t, input.JustReleased[KeyRight])
	assert.False(t, input.Pressed[KeyRight])

	input.beginFrame()
	input.setKey(KeyRight, false)
	assert.False(t, input.JustReleased[KeyRight])
}

func TestInput_MouseDeltaSkipsFirstSample(t *testing.T) {
	input := &Input{}

	input.beginFrame()
	input.moveMouse(100, 50)
	assert.Zero(t, input.MouseDeltaX)
	assert.Zero(t, input.MouseDeltaY)

	input.beginFrame()
	input.moveMouse(110, 45)
	assert.Equal(t, 10.0, input.MouseDeltaX)
	assert.Equal(t, -5.0, input.MouseDeltaY)

	input.beginFrame()
	assert.Zero(t, input.MouseDeltaX)
}

func TestInput_ResizeFlagsChangesOnly(t *testing.T) {
	input := &Input{}

	input.resize(800, 600)
	assert.True(t, input.Resized)

	input.beginFrame()
	input.resize(800, 600)
	assert.False(t, input.Resized)

	input.resize(0, 0)
	assert.True(t, input.Resized)
}
