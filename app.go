package galaxy

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module bundles resources and systems. Install runs once, while the App is built.
type Module interface {
	Install(app *App, cmd *Commands)
}

// Quit ends App.Run after the current frame.
type Quit struct {
	Requested bool
	Reason    string
}

func (q *Quit) Request(reason string) {
	if q.Requested {
		return
	}
	q.Requested = true
	q.Reason = reason
}

type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	shutdown           []systemFn
	resources          map[reflect.Type]any
	ecs                *Ecs
	built              bool

	// Command buffering, flushed after every stage
	pendingAdditions    []pendingAdd
	pendingRemovals     []EntityId
	pendingCompAdds     []pendingComponents
	pendingCompRemovals []pendingComponents
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingComponents struct {
	eid        EntityId
	components []any
}

// NewApp returns a stateless App with the default stages and a Quit resource.
func NewApp() *App {
	ecs := MakeEcs()
	app := &App{
		systems:          make(map[string]map[State]map[statePhase][]systemFn),
		systemsStateless: make(map[string][]systemFn),
		resources:        make(map[reflect.Type]any),
		ecs:              &ecs,
	}
	app.build()
	return app
}

// build registers the default stage list. It is idempotent.
func (app *App) build() {
	if app.built {
		return
	}
	app.built = true
	if app.systems == nil {
		app.systems = make(map[string]map[State]map[statePhase][]systemFn)
	}
	if app.systemsStateless == nil {
		app.systemsStateless = make(map[string][]systemFn)
	}
	if app.resources == nil {
		app.resources = make(map[reflect.Type]any)
	}
	for _, stage := range []Stage{Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender, Finale} {
		app.stages = append(app.stages, stage)
		app.initStatefulStage(stage)
	}
	if _, ok := app.resources[reflect.TypeOf(Quit{})]; !ok {
		app.addResources(&Quit{})
	}
}

// UseModules installs modules in order. Later modules see the resources of earlier ones.
func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	app.FlushCommands()
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// OnShutdown registers a system that runs once after the main loop ends.
func (app *App) OnShutdown(system systemFn) *App {
	app.shutdown = append(app.shutdown, system)
	return app
}

// Run executes frames until the Quit resource is set or, in stateful mode,
// the final state has been left.
func (app *App) Run() {
	app.build()
	log := app.Logger()

	if app.stateful {
		log.Debugf("Running in stateful mode")
		app.state = app.initialState
		app.callSystems(app.state, enter)
	} else {
		log.Debugf("Running in stateless mode")
	}

	for !app.Step() {
	}

	for _, system := range app.shutdown {
		app.callSystem(system)
	}
	if q := app.quit(); q != nil && q.Reason != "" {
		log.Infof("Shutting down: %s", q.Reason)
	}
}

// Step runs one frame and reports whether the App is done.
func (app *App) Step() bool {
	app.callSystems(app.state, execute)

	if app.stateful {
		if app.stateTransitioning {
			app.stateTransitioning = false
			app.executeChangeState(app.nextState)
		}

		if app.state == app.finalState {
			app.callSystems(app.state, exit)
			return true
		}
	}

	q := app.quit()
	return q != nil && q.Requested
}

func (app *App) quit() *Quit {
	if r, ok := app.resources[reflect.TypeOf(Quit{})]; ok {
		return r.(*Quit)
	}
	return nil
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		// Stateless systems run first on execute
		if execute == phase {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}

		if app.stateful {
			if systemsInStage, ok := app.systems[stage.Name]; ok {
				if systemsInState, ok := systemsInStage[state]; ok {
					for _, system := range systemsInState[phase] {
						app.callSystem(system)
					}
				}
			}
		}
		app.FlushCommands()
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// resourceOf returns the resource of type *T, if installed.
func resourceOf[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			resourceVal := reflect.ValueOf(resource)
			args[i] = reflect.NewAt(underlyingType, resourceVal.UnsafePointer())
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 &&
		len(app.pendingCompAdds) == 0 && len(app.pendingCompRemovals) == 0 {
		return
	}

	// Removals first so nothing is added to a dead entity
	for _, eid := range app.pendingRemovals {
		if _, alive := app.ecs.entityIndex[eid]; alive {
			app.ecs.removeEntity(eid)
		}
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		if _, alive := app.ecs.entityIndex[add.eid]; alive {
			app.ecs.addComponents(add.eid, add.components...)
		}
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]

	for _, rem := range app.pendingCompRemovals {
		if _, alive := app.ecs.entityIndex[rem.eid]; alive {
			app.ecs.removeComponents(rem.eid, rem.components...)
		}
	}
	app.pendingCompRemovals = app.pendingCompRemovals[:0]
}
