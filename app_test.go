package galaxy

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	app.changeState(2)
	assert.Equal(t, State(2), app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(2)
	assert.Equal(t, State(2), app.state)
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem())

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem())

	got, ok := resourceOf[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)
}

func TestApp_SystemsReceiveResources(t *testing.T) {
	app := NewApp()
	res := NewMockResource1("before")
	app.Commands().AddResources(res)

	app.UseSystem(System(func(r *MockResource1, q *Quit) {
		r.name = "after"
		q.Request("done")
	}))
	app.Run()

	assert.Equal(t, "after", res.name)
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	app := NewApp()
	var order []string
	for _, stage := range []Stage{Finale, Update, Prelude, PreRender} {
		name := stage.Name
		app.UseSystem(System(func() { order = append(order, name) }).InStage(stage))
	}

	done := app.Step()

	assert.False(t, done)
	assert.Equal(t, []string{"Prelude", "Update", "PreRender", "Finale"}, order)
}

func TestApp_UseStageInsertsRelativeToTarget(t *testing.T) {
	app := NewApp()
	custom := Stage{Name: "Custom"}
	app.UseStage(custom, AfterStage(Update))

	idx := slicesIndex(app.stages, custom)
	require.NotEqual(t, -1, idx)
	assert.Equal(t, Update, app.stages[idx-1])
	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "missing"})) })
}

func slicesIndex(stages []Stage, s Stage) int {
	for i, st := range stages {
		if st == s {
			return i
		}
	}
	return -1
}

func TestApp_RunStopsOnQuitAndRunsShutdown(t *testing.T) {
	app := NewApp()
	frames := 0
	app.UseSystem(System(func(q *Quit) {
		frames++
		if frames == 3 {
			q.Request("third frame")
		}
	}))
	shutdown := 0
	app.OnShutdown(func(q *Quit) {
		shutdown++
		assert.Equal(t, "third frame", q.Reason)
	})

	app.Run()

	assert.Equal(t, 3, frames)
	assert.Equal(t, 1, shutdown)
}

func TestApp_QuitKeepsFirstReason(t *testing.T) {
	q := &Quit{}
	q.Request("window closed")
	q.Request("escape")

	assert.True(t, q.Requested)
	assert.Equal(t, "window closed", q.Reason)
}

func TestApp_StatefulRunEndsInFinalState(t *testing.T) {
	app := NewAppBuilder().UseStates(0, 2).Build()

	var trace []string
	app.UseSystem(System(func(cmd *Commands) {
		trace = append(trace, "execute 0")
		cmd.ChangeState(1)
	}).InState(OnExecute(0)))
	app.UseSystem(System(func() { trace = append(trace, "enter 1") }).InState(OnEnter(1)))
	app.UseSystem(System(func(cmd *Commands) {
		trace = append(trace, "execute 1")
		cmd.ChangeState(2)
	}).InState(OnExecute(1)))
	app.UseSystem(System(func() { trace = append(trace, "exit 2") }).InState(OnExit(2)))

	app.Run()

	assert.Equal(t, []string{"execute 0", "enter 1", "execute 1", "exit 2"}, trace)
}

func TestApp_StatefulSystemInStatelessAppPanics(t *testing.T) {
	app := NewApp()
	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InState(OnEnter(0)))
	})
}

func TestApp_MissingDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(*MockResource2) {}))
	assert.Panics(t, func() { app.Step() })
}

func TestCommands_FlushedAfterStage(t *testing.T) {
	type Marker struct{ v int }
	type Extra struct{}

	app := NewApp()
	var eid EntityId
	added := false
	seenInSameStage := -1
	seenNextStage := -1

	app.UseSystem(System(func(cmd *Commands) {
		if !added {
			added = true
			eid = cmd.AddEntity(Marker{v: 5})
			seenInSameStage = 0
			MakeQuery1[Marker](cmd).Map(func(EntityId, *Marker) bool {
				seenInSameStage++
				return true
			})
		}
	}).InStage(Update))
	app.UseSystem(System(func(cmd *Commands) {
		seenNextStage = 0
		MakeQuery1[Marker](cmd).Map(func(EntityId, *Marker) bool {
			seenNextStage++
			return true
		})
	}).InStage(PostUpdate))

	app.Step()

	assert.Equal(t, 0, seenInSameStage)
	assert.Equal(t, 1, seenNextStage)

	cmd := app.Commands()
	cmd.AddComponents(eid, Extra{})
	app.FlushCommands()
	assert.Len(t, cmd.GetAllComponents(eid), 2)

	cmd.RemoveComponents(eid, Extra{})
	app.FlushCommands()
	assert.Equal(t, []any{Marker{v: 5}}, cmd.GetAllComponents(eid))

	cmd.RemoveEntity(eid)
	cmd.AddComponents(eid, Extra{})
	app.FlushCommands()
	assert.Nil(t, cmd.GetAllComponents(eid))
}
