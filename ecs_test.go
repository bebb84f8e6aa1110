package galaxy

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	assert.Empty(t, ecs.archetypes)
	assert.Empty(t, ecs.entityIndex)
	assert.Equal(t, EntityId(0), ecs.entityIdCounter)
	assert.Equal(t, componentId(0), ecs.componentIdCounter)
}

func TestEcs_AddEntity(t *testing.T) {
	type TestComponent struct{ x string }

	ecs := MakeEcs()
	empty := ecs.addEntity()
	withComp := ecs.addEntity(TestComponent{x: "test"})

	require.Contains(t, ecs.entityIndex, empty)
	require.Contains(t, ecs.entityIndex, withComp)
	assert.NotEqual(t, ecs.entityIndex[empty], ecs.entityIndex[withComp],
		"entities with different components must not share an archetype")
	assert.Equal(t, 2, ecs.entityCount())
}

func TestEcs_AddComponents(t *testing.T) {
	type TestComponent0 struct{ a int }
	type TestComponent1 struct{ x string }
	type TestComponent2 struct{ y string }
	type TestComponent3 struct{ z string }

	ecs := MakeEcs()
	entityId := ecs.addEntity(TestComponent0{a: 1337})

	ecs.addComponents(entityId, TestComponent1{x: "test"}, TestComponent2{y: "hello"})
	ecs.addComponents(entityId, &TestComponent3{z: "test-2"})

	arch := ecs.archetypes[ecs.entityIndex[entityId]]
	assert.Len(t, arch.componentData, 4)

	r := arch.entities[entityId]
	id0 := ecs.getComponentId(reflect.TypeOf(TestComponent0{}))
	assert.Equal(t, 1337, arch.componentData[id0].([]TestComponent0)[r].a, "existing component survives the move")
}

func TestEcs_RemoveComponents(t *testing.T) {
	type Keep struct{ v int }
	type Drop struct{ v int }

	ecs := MakeEcs()
	id := ecs.addEntity(Keep{v: 7}, Drop{v: 9})
	ecs.removeComponents(id, Drop{})

	arch := ecs.archetypes[ecs.entityIndex[id]]
	require.Len(t, arch.componentData, 1)
	keepId := ecs.getComponentId(reflect.TypeOf(Keep{}))
	assert.Equal(t, 7, arch.componentData[keepId].([]Keep)[arch.entities[id]].v)
}

func TestEcs_AddInvalidComponentShouldPanic(t *testing.T) {
	ecs := MakeEcs()
	assert.Panics(t, func() {
		ecs.addEntity(123)
	})
}

func TestEcs_ComponentRegistration(t *testing.T) {
	type Position struct{ x, y float64 }

	ecs := MakeEcs()
	id1 := ecs.getComponentId(reflect.TypeOf(Position{}))
	id2 := ecs.getComponentId(reflect.TypeOf(Position{}))

	assert.Equal(t, id1, id2)
	assert.Equal(t, reflect.TypeOf(Position{}), ecs.getComponentType(id1))
}

func TestEcs_ArchetypeKeys(t *testing.T) {
	assert.Equal(t, archetypeKey{1, 2, 3}, dedupAndSortArchetypeKey([]componentId{3, 1, 2, 1, 3}))
	assert.Equal(t, archetypeKey{1, 2, 3, 4}, combineArchetypeKeys([]componentId{1, 2, 3}, []componentId{4, 3, 2, 1}))
	assert.Equal(t, getArchetypeId(archetypeKey{1, 2}), getArchetypeId(dedupAndSortArchetypeKey([]componentId{2, 1})))
}

func TestEcs_RemoveEntityRecyclesRow(t *testing.T) {
	type Position struct{ X, Y float64 }

	ecs := MakeEcs()
	first := ecs.addEntity(Position{1, 2})
	ecs.removeEntity(first)
	assert.NotContains(t, ecs.entityIndex, first)

	second := ecs.addEntity(Position{3, 4})
	arch := ecs.archetypes[ecs.entityIndex[second]]
	posId := ecs.getComponentId(reflect.TypeOf(Position{}))

	assert.Len(t, arch.componentData[posId].([]Position), 1, "the freed row is reused")
	assert.Equal(t, Position{3, 4}, arch.componentData[posId].([]Position)[arch.entities[second]])
}

func TestEcsReflect_SliceHelpers(t *testing.T) {
	s := reflectSliceMake(reflect.TypeOf(0))
	s = reflectSliceAppend(s, reflect.ValueOf(10))
	s = reflectSliceAppend(s, reflect.ValueOf(20))
	reflectSliceSet(s, 0, reflect.ValueOf(99))

	assert.Equal(t, []int{99, 20}, s.([]int))
	assert.Equal(t, int64(20), reflectSliceGet(s, 1).Int())

	assert.Panics(t, func() { reflectSliceSet(s, 0, reflect.ValueOf("wrong type")) })
	assert.Panics(t, func() { reflectSliceGet(s, 10) })
}
