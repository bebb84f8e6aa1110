package galaxy

import (
	"reflect"
)

// Query1..Query3 iterate entities that own all listed components. A component
// passed in optionals may be missing; its pointer is then nil.
// Iteration order is unspecified.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]       { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] {
	return Query3[A, B, C]{ecs: cmd.app.ecs}
}

// column resolves the typed slice of component T in arch. ok is false when the
// archetype cannot match; a nil slice with ok=true means an absent optional.
func column[T any](ecs *Ecs, arch *archetype, opt set[componentId]) (comps []T, ok bool) {
	id := identifyComponent[T](ecs)
	if data, found := arch.componentData[id]; found {
		return data.([]T), true
	}
	if _, optional := opt[id]; optional {
		return nil, true
	}
	return nil, false
}

func at[T any](comps []T, r row) *T {
	if comps == nil {
		return nil
	}
	return &comps[r]
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok := column[A](q.ecs, arch, opt)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, at(comps1, r)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok := column[A](q.ecs, arch, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](q.ecs, arch, opt)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, at(comps1, r), at(comps2, r)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok := column[A](q.ecs, arch, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](q.ecs, arch, opt)
		if !ok {
			continue
		}
		comps3, ok := column[C](q.ecs, arch, opt)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, at(comps1, r), at(comps2, r), at(comps3, r)) {
				return
			}
		}
	}
}

func identifyComponent[T any](ecs *Ecs) componentId {
	var t T
	return ecs.getComponentId(reflect.TypeOf(t))
}

func identifyOptionals(ecs *Ecs, optionals ...any) set[componentId] {
	opt := make(set[componentId], len(optionals))
	for _, o := range optionals {
		opt[ecs.getComponentId(componentType(o))] = struct{}{}
	}
	return opt
}
