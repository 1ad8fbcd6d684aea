// Package demo declares the sample component and system types the orrery
// CLI scans when no host engine is embedding the catalog. The set covers
// every discovery path: plain component data, an engine-object hierarchy,
// value and reference systems, groups, ordering, and write groups.
package demo

import (
	"reflect"

	"github.com/orrery-engine/orrery/pkg/types"
)

// Plain component data.

type Position struct{ X, Y, Z float32 }

func (Position) IsComponent() {}

type Velocity struct{ X, Y, Z float32 }

func (Velocity) IsComponent() {}

type Rotation struct{ Pitch, Yaw, Roll float32 }

func (Rotation) IsComponent() {}

// Engine-object hierarchy: Prop and Vehicle derive from Actor.

type Actor struct {
	types.EngineObject
	Layer uint8
}

type Prop struct {
	Actor
	Mass float32
}

type Vehicle struct {
	Actor
	Wheels uint8
}

// Systems.

type SimulationGroup struct{ types.SystemGroup }

type SpawnSystem struct{ Seed uint64 }

func (SpawnSystem) Update() {}

type MovementSystem struct{ Step float32 }

func (MovementSystem) Update() {}

// RenderSystem is a reference-type system; its state is host-managed.
type RenderSystem struct {
	Pipeline string
	Targets  []string
}

func (*RenderSystem) Update() {}

// Modules returns the demo module set.
func Modules() []types.Module {
	group := reflect.TypeOf(&SimulationGroup{})
	movement := reflect.TypeOf(MovementSystem{})
	spawn := reflect.TypeOf(SpawnSystem{})

	core := types.NewModule("demo.core").
		DependsOn(types.ContractModuleName).
		DeclareOf(Position{}).
		DeclareOf(Velocity{}).
		DeclareOf(Rotation{}).
		TypeAttr(reflect.TypeOf(Position{}), types.Attribute{Kind: types.AttrWriteGroup, Target: reflect.TypeOf(Velocity{})}).
		Build()

	objects := types.NewModule("demo.objects").
		DependsOn(types.ObjectModelModuleName).
		DeclareOf(Actor{}).
		DeclareOf(Prop{}).
		DeclareOf(Vehicle{}).
		Build()

	systems := types.NewModule("demo.systems").
		DependsOn(types.ContractModuleName).
		Declare(group, spawn, movement).
		DeclareOf(&RenderSystem{}).
		TypeAttr(spawn, types.Attribute{Kind: types.AttrUpdateInGroup, Target: group}).
		TypeAttr(movement, types.Attribute{Kind: types.AttrUpdateInGroup, Target: group}).
		TypeAttr(movement, types.Attribute{Kind: types.AttrUpdateAfter, Target: spawn}).
		Build()

	return []types.Module{core, objects, systems}
}
