package ecs

import (
	"fmt"
	"reflect"
)

// ComponentId is the dense index a registry assigns to a component type.
type ComponentId uint8

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance builds its own pools from the registry, allowing multiple
// independent ECS worlds to share a registry without sharing data.
type ComponentRegistry struct {
	ids       map[reflect.Type]ComponentId
	types     []reflect.Type
	factories []func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentId),
	}
}

// RegisterComponent registers a new component type with the given registry and returns its ID.
// This must be called for each component type before it can be used. Registering a type twice
// returns the existing ID.
func RegisterComponent[T any](r *ComponentRegistry) ComponentId {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	if len(r.types) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: cannot register %s, registry is full (%d types)", t, MaxComponentTypes))
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}

	id := ComponentId(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.factories = append(r.factories, func() iComponentStorage {
		return &genericComponentStorage[T]{typ: t}
	})
	return id
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Types returns the registered component types in registration order.
func (r *ComponentRegistry) Types() []reflect.Type {
	return r.types
}

func (r *ComponentRegistry) lookup(t reflect.Type) (ComponentId, bool) {
	id, ok := r.ids[t]
	return id, ok
}

func (r *ComponentRegistry) mustLookup(t reflect.Type) ComponentId {
	id, ok := r.ids[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return id
}

const (
	genericBlockSize = 64
)

// genericComponentStorage pools components of type T in fixed-size blocks.
// Blocks are allocated individually so component addresses stay stable while the pool grows.
type genericComponentStorage[T any] struct {
	typ       reflect.Type
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

func resetComponent[T any](p *T) {
	var zero T
	*p = zero
	if r, ok := any(p).(Resetter); ok {
		r.Reset()
	}
}

// Alloc takes a slot from the free list, or grows the pool, and returns its index.
// The slot holds the component's default value.
func (cs *genericComponentStorage[T]) Alloc() int {
	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, new([genericBlockSize]bool))
		}
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize
	resetComponent(&cs.blocks[blockIdx][slotIdx])
	cs.filled[blockIdx][slotIdx] = true
	cs.live++
	return index
}

// Free resets the slot and returns it to the free list.
func (cs *genericComponentStorage[T]) Free(index int) {
	if !cs.Has(index) {
		return
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize
	resetComponent(&cs.blocks[blockIdx][slotIdx])
	cs.filled[blockIdx][slotIdx] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.live--
}

// Get returns a *T for the slot, or nil when the slot is not in use.
func (cs *genericComponentStorage[T]) Get(index int) any {
	p := cs.get(index)
	if p == nil {
		return nil
	}
	return p
}

func (cs *genericComponentStorage[T]) get(index int) *T {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Set copies value (a T or *T) into the slot.
func (cs *genericComponentStorage[T]) Set(index int, value any) bool {
	p := cs.get(index)
	if p == nil {
		return false
	}
	switch v := value.(type) {
	case T:
		*p = v
	case *T:
		if v == nil {
			return false
		}
		*p = *v
	default:
		return false
	}
	return true
}

// Has checks if the slot at the given index is in use.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	return cs.filled[index/genericBlockSize][index%genericBlockSize]
}

func (cs *genericComponentStorage[T]) Type() reflect.Type {
	return cs.typ
}

func (cs *genericComponentStorage[T]) Live() int {
	return cs.live
}

func (cs *genericComponentStorage[T]) FreeCount() int {
	return len(cs.freeSlots)
}
