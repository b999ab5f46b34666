package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// Archetype groups the entities that currently own exactly the same set of component types.
type Archetype struct {
	id       uint32
	mask     mask
	types    []reflect.Type
	entities memberSet
}

func newArchetype(id uint32, m mask, registry *ComponentRegistry) *Archetype {
	types := make([]reflect.Type, 0, 8)
	for cid, t := range registry.types {
		if m.has(ComponentId(cid)) {
			types = append(types, t)
		}
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		if a.String() < b.String() {
			return -1
		}
		if a.String() > b.String() {
			return 1
		}
		return 0
	})

	return &Archetype{
		id:       id,
		mask:     m,
		types:    types,
		entities: newMemberSet(),
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier, unique within its Storage
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types of this archetype sorted by name
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities in this archetype
func (a *Archetype) Len() int {
	return a.entities.len()
}

// Iter returns an iterator over the entities of this archetype
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		ids, release := a.entities.snapshot()
		defer release()
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}
