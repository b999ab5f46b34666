package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// FamilyDef describes a family predicate over component types: an entity matches when it
// owns every type in All, at least one type in One (if One is not empty) and none in Exclude.
type FamilyDef struct {
	All     []reflect.Type
	One     []reflect.Type
	Exclude []reflect.Type
}

// AllOf starts a family definition requiring every given type.
func AllOf(types ...reflect.Type) FamilyDef {
	return FamilyDef{All: types}
}

// OneOf returns a copy of d that additionally requires at least one of the given types.
func (d FamilyDef) OneOf(types ...reflect.Type) FamilyDef {
	d.One = append(slices.Clone(d.One), types...)
	return d
}

// Excluding returns a copy of d that additionally rejects entities owning any of the given types.
func (d FamilyDef) Excluding(types ...reflect.Type) FamilyDef {
	d.Exclude = append(slices.Clone(d.Exclude), types...)
	return d
}

type familyKey struct {
	all, one, exclude mask
}

func (d FamilyDef) key(registry *ComponentRegistry) familyKey {
	var k familyKey
	for _, t := range d.All {
		k.all.set(registry.mustLookup(t))
	}
	for _, t := range d.One {
		k.one.set(registry.mustLookup(t))
	}
	for _, t := range d.Exclude {
		k.exclude.set(registry.mustLookup(t))
	}
	return k
}

func (k familyKey) matches(m mask) bool {
	if !m.contains(k.all) {
		return false
	}
	if !k.one.isZero() && !m.intersects(k.one) {
		return false
	}
	return !m.intersects(k.exclude)
}

// EntityListener receives family membership changes. Structural changes made from a
// listener must go through cmds; they are applied once the triggering operation completes.
type EntityListener interface {
	EntityAdded(cmds *Commands, id EntityId)
	EntityRemoved(cmds *Commands, id EntityId)
}

// ListenerFuncs adapts plain functions to EntityListener. Nil funcs are skipped.
type ListenerFuncs struct {
	Added   func(cmds *Commands, id EntityId)
	Removed func(cmds *Commands, id EntityId)
}

func (l ListenerFuncs) EntityAdded(cmds *Commands, id EntityId) {
	if l.Added != nil {
		l.Added(cmds, id)
	}
}

func (l ListenerFuncs) EntityRemoved(cmds *Commands, id EntityId) {
	if l.Removed != nil {
		l.Removed(cmds, id)
	}
}

// Family is the live set of entities matching a FamilyDef. Membership is maintained
// incrementally by the Storage as components are added and removed.
type Family struct {
	def       FamilyDef
	key       familyKey
	members   memberSet
	listeners []EntityListener
}

// Def returns the definition this family was created from.
func (f *Family) Def() FamilyDef {
	return f.def
}

// Contains reports whether the entity is currently a member.
func (f *Family) Contains(id EntityId) bool {
	return f.members.contains(id)
}

// Len returns the number of members.
func (f *Family) Len() int {
	return f.members.len()
}

// Iter iterates the members as they were when iteration started. Membership changes made
// during iteration are visible to the next Iter call only.
func (f *Family) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		ids, release := f.members.snapshot()
		defer release()
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Entities returns a copy of the current members.
func (f *Family) Entities() []EntityId {
	return slices.Clone(f.members.ids)
}
