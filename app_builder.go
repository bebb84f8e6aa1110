package galaxy

import (
	"reflect"
)

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	ecs := MakeEcs()
	return &AppBuilder{app: &App{
		resources: make(map[reflect.Type]any),
		stateful:  false,
		ecs:       &ecs,
	}}
}

func (b *AppBuilder) UseStates(initialState State, finalState State) *AppBuilder {
	b.app.stateful = true
	b.app.initialState = initialState
	b.app.finalState = finalState

	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build creates the stages (states must be known by then) and installs the modules.
func (b *AppBuilder) Build() *App {
	app := b.app
	app.build()
	app.UseModules(b.modules...)
	return app
}
