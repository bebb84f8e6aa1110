package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_Stateless(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.False(t, app.stateful)
	assert.Equal(t, State(0), app.initialState)
	assert.Equal(t, State(0), app.finalState)
	assert.Len(t, app.stages, 8)

	_, ok := resourceOf[Quit](app)
	assert.True(t, ok, "every built app carries a Quit resource")
}

func TestAppBuilder_UseStates(t *testing.T) {
	app := NewAppBuilder().UseStates(1, 10).Build()

	assert.True(t, app.stateful)
	assert.Equal(t, State(1), app.initialState)
	assert.Equal(t, State(10), app.finalState)
	require.Contains(t, app.systems, Update.Name)
	assert.Len(t, app.systems[Update.Name], 10)
}

func TestAppBuilder_Build_InstallsModulesInOrder(t *testing.T) {
	var order []string
	first := &MockModule{order: &order, name: "first"}
	second := &MockModule{order: &order, name: "second"}

	builder := NewAppBuilder()
	builder.UseModule(first)
	builder.UseModule(second)
	require.Len(t, builder.modules, 2)

	builder.Build()

	assert.True(t, first.installed)
	assert.True(t, second.installed)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAppBuilder_BuildIsIdempotentForStages(t *testing.T) {
	app := NewAppBuilder().Build()
	app.build()

	assert.Len(t, app.stages, 8)
}
