package ecs_test

import "github.com/plus3/darkmatter/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Frozen struct{}

type Score int32

// Armor has a non-zero default restored by its pool.
type Armor struct {
	Value int
	Tags  []string
}

func (a *Armor) Reset() {
	a.Value = 10
	a.Tags = nil
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Frozen](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Armor](registry)
	return registry
}

type recordingListener struct {
	added   []ecs.EntityId
	removed []ecs.EntityId
}

func (l *recordingListener) EntityAdded(_ *ecs.Commands, id ecs.EntityId) {
	l.added = append(l.added, id)
}

func (l *recordingListener) EntityRemoved(_ *ecs.Commands, id ecs.EntityId) {
	l.removed = append(l.removed, id)
}
