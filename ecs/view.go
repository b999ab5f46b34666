package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type viewField struct {
	componentType reflect.Type
	cid           ComponentId
	offset        uintptr
	optional      bool
}

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with pointer fields for each component type:
//   - embedded fields are always required
//   - named fields can be marked `ecs:"optional"` (nil when absent) or
//     `ecs:"exclude"` (the entity must not own the type; the field stays nil)
//   - a field of type EntityId receives the id of the entity
type View[T any] struct {
	storage   *Storage
	fields    []viewField
	idOffsets []uintptr
	def       FamilyDef
	family    *Family
}

var entityIdType = reflect.TypeFor[EntityId]()

// eface mirrors the runtime layout of an empty interface. Pools hand out components as
// `any` holding a pointer, so data is the component pointer itself.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// NewView creates a new view for the given struct type and registers its family with storage.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffsets = append(v.idOffsets, field.Offset)
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types or ecs.EntityId: " + field.Name)
		}

		componentType := field.Type.Elem()
		cid := storage.registry.mustLookup(componentType)

		tag := ""
		if !field.Anonymous {
			tag = field.Tag.Get("ecs")
		}
		switch tag {
		case "":
			v.def.All = append(v.def.All, componentType)
		case "optional":
		case "exclude":
			v.def.Exclude = append(v.def.Exclude, componentType)
			continue
		default:
			panic("invalid ecs tag value: \"" + tag + "\" (supported: \"optional\", \"exclude\")")
		}

		v.fields = append(v.fields, viewField{
			componentType: componentType,
			cid:           cid,
			offset:        field.Offset,
			optional:      tag == "optional",
		})
	}

	v.family = storage.Family(v.def)
	return v
}

// Family returns the family of entities matching this view.
func (v *View[T]) Family() *Family {
	return v.family
}

// Def returns the family definition derived from T.
func (v *View[T]) Def() FamilyDef {
	return v.def
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is not a member of the view's family.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.family.Contains(id) {
		return false
	}
	rec := v.storage.entities.lookup(id, entityAlive)
	if rec == nil {
		return false
	}

	// Write field pointers through precomputed offsets to avoid reflection in the hot path
	structPtr := unsafe.Pointer(ptr)
	for _, off := range v.idOffsets {
		*(*EntityId)(unsafe.Add(structPtr, off)) = id
	}

	for i := range v.fields {
		f := &v.fields[i]
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))

		slot := slotOf(rec, f.cid)
		if slot < 0 {
			if !f.optional {
				return false
			}
			*fieldPtr = nil
			continue
		}

		component := v.storage.pools[f.cid].Get(slot)
		*fieldPtr = (*eface)(unsafe.Pointer(&component)).data
	}

	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't match the view
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter returns an iterator over all entities matching this view.
// The iterator yields (EntityId, T) pairs where T is the populated view struct.
// Structural changes during iteration do not affect the entities visited.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		for id := range v.family.Iter() {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Components extracts the non-nil component values from data, for passing to Spawn.
func (v *View[T]) Components(data T) []any {
	structPtr := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))
		if componentPtr == nil {
			if !f.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.componentType, componentPtr).Elem().Interface())
	}
	return components
}

// Spawn creates a new entity with components extracted from the view struct
func (v *View[T]) Spawn(data T) EntityId {
	return v.storage.Spawn(v.Components(data)...)
}
