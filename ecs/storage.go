package ecs

import (
	"fmt"
	"reflect"
)

// Storage owns all entities, their pooled components, the archetypes grouping them
// and the families systems select them by.
type Storage struct {
	registry *ComponentRegistry
	pools    []iComponentStorage
	entities entityPool

	archetypes      map[mask]*Archetype
	archetypeList   []*Archetype
	nextArchetypeId uint32

	families        map[familyKey]*Family
	familyList      []*Family
	globalListeners []EntityListener

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type

	pending  *Commands
	flushing bool
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	s := &Storage{
		registry:   registry,
		archetypes: make(map[mask]*Archetype),
		families:   make(map[familyKey]*Family),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
	s.pending = NewCommands(s)
	return s
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) pool(cid ComponentId) iComponentStorage {
	for int(cid) >= len(s.pools) {
		s.pools = append(s.pools, s.registry.factories[len(s.pools)]())
	}
	return s.pools[cid]
}

func typedPool[T any](s *Storage, cid ComponentId) *genericComponentStorage[T] {
	return s.pool(cid).(*genericComponentStorage[T])
}

func (s *Storage) archetypeFor(m mask) *Archetype {
	if a, ok := s.archetypes[m]; ok {
		return a
	}
	a := newArchetype(s.nextArchetypeId, m, s.registry)
	s.nextArchetypeId++
	s.archetypes[m] = a
	s.archetypeList = append(s.archetypeList, a)
	return a
}

func slotOf(rec *entityRecord, cid ComponentId) int {
	if int(cid) >= len(rec.slots) {
		return -1
	}
	return int(rec.slots[cid])
}

func setSlot(rec *entityRecord, cid ComponentId, slot int) {
	for int(cid) >= len(rec.slots) {
		rec.slots = append(rec.slots, -1)
	}
	rec.slots[cid] = int32(slot)
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// transition moves an entity between archetypes and updates every family whose
// predicate result changed, firing listeners in family registration order.
func (s *Storage) transition(id EntityId, rec *entityRecord, from, to *Archetype) {
	if from != nil {
		from.entities.remove(id)
	}
	if to != nil {
		to.entities.add(id)
	}
	rec.archetype = to

	for _, f := range s.familyList {
		was := from != nil && f.key.matches(from.mask)
		now := to != nil && f.key.matches(to.mask)
		switch {
		case was && !now:
			f.members.remove(id)
			for _, l := range f.listeners {
				l.EntityRemoved(s.pending, id)
			}
		case !was && now:
			f.members.add(id)
			for _, l := range f.listeners {
				l.EntityAdded(s.pending, id)
			}
		}
	}
}

// settle applies commands queued by listeners unless a flush is already running.
func (s *Storage) settle() {
	if !s.flushing && !s.pending.empty() {
		s.pending.Flush()
	}
}

// CreateEntity allocates an entity without components.
func (s *Storage) CreateEntity() EntityId {
	return s.Spawn()
}

// reserve allocates an entity slot that is not yet alive. Commands.Spawn uses it
// so the id can be handed out before the spawn is applied.
func (s *Storage) reserve() EntityId {
	return s.entities.allocate(s.registry.Len())
}

// Spawn creates a new entity with the provided components. Families and listeners
// observe the entity once, with its complete component set.
func (s *Storage) Spawn(components ...any) EntityId {
	id := s.reserve()
	s.materialize(id, components)
	s.settle()
	return id
}

func (s *Storage) materialize(id EntityId, components []any) bool {
	rec := s.entities.lookup(id, entityReserved)
	if rec == nil {
		return false
	}

	var m mask
	for _, component := range components {
		cid := s.registry.mustLookup(componentType(component))
		pool := s.pool(cid)
		slot := slotOf(rec, cid)
		if slot < 0 {
			slot = pool.Alloc()
			setSlot(rec, cid, slot)
		}
		pool.Set(slot, component)
		m.set(cid)
	}

	rec.state = entityAlive
	s.entities.alive++
	s.transition(id, rec, nil, s.archetypeFor(m))
	for _, l := range s.globalListeners {
		l.EntityAdded(s.pending, id)
	}
	return true
}

// Alive reports whether the id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	return s.entities.lookup(id, entityAlive) != nil
}

// Delete destroys the entity: it leaves every family (listeners still see its
// components), its components return to their pools and its slot is recycled.
// Deleting a dead entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	if rec := s.entities.lookup(id, entityReserved); rec != nil {
		s.entities.release(id)
		return
	}

	rec := s.entities.lookup(id, entityAlive)
	if rec == nil {
		return
	}

	s.transition(id, rec, rec.archetype, nil)
	for _, l := range s.globalListeners {
		l.EntityRemoved(s.pending, id)
	}

	for cid, slot := range rec.slots {
		if slot >= 0 {
			s.pools[cid].Free(int(slot))
			rec.slots[cid] = -1
		}
	}
	s.entities.release(id)
	s.settle()
}

// AddComponent attaches a copy of component to the entity, replacing any existing
// component of the same type. It returns false if the entity is not alive.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	rec := s.entities.lookup(id, entityAlive)
	if rec == nil {
		return false
	}

	cid := s.registry.mustLookup(componentType(component))
	pool := s.pool(cid)
	if slot := slotOf(rec, cid); slot >= 0 {
		pool.Set(slot, component)
		return true
	}

	slot := pool.Alloc()
	pool.Set(slot, component)
	s.attach(id, rec, cid, slot)
	return true
}

// Add obtains a T from its pool, applies init and attaches it to the entity. An existing T
// is reset and re-initialised in place. It returns nil if the entity is not alive.
func Add[T any](s *Storage, id EntityId, init func(*T)) *T {
	rec := s.entities.lookup(id, entityAlive)
	if rec == nil {
		return nil
	}

	cid := s.registry.mustLookup(reflect.TypeFor[T]())
	pool := typedPool[T](s, cid)
	if slot := slotOf(rec, cid); slot >= 0 {
		p := pool.get(slot)
		resetComponent(p)
		if init != nil {
			init(p)
		}
		return p
	}

	slot := pool.Alloc()
	p := pool.get(slot)
	if init != nil {
		init(p)
	}
	s.attach(id, rec, cid, slot)
	return p
}

func (s *Storage) attach(id EntityId, rec *entityRecord, cid ComponentId, slot int) {
	setSlot(rec, cid, slot)
	m := rec.archetype.mask
	m.set(cid)
	s.transition(id, rec, rec.archetype, s.archetypeFor(m))
	s.settle()
}

// RemoveComponent detaches the component of the given type and returns it to its pool.
// Listeners of families the entity leaves can still read the component. It returns false
// if the entity is not alive or has no such component.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	rec := s.entities.lookup(id, entityAlive)
	if rec == nil {
		return false
	}
	cid, ok := s.registry.lookup(compType)
	if !ok {
		return false
	}
	slot := slotOf(rec, cid)
	if slot < 0 {
		return false
	}

	m := rec.archetype.mask
	m.unset(cid)
	s.transition(id, rec, rec.archetype, s.archetypeFor(m))

	s.pools[cid].Free(slot)
	rec.slots[cid] = -1
	s.settle()
	return true
}

// Remove detaches the entity's T. See RemoveComponent.
func Remove[T any](s *Storage, id EntityId) bool {
	return s.RemoveComponent(id, reflect.TypeFor[T]())
}

// GetComponent returns a pointer to the entity's component of the given type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	rec := s.entities.lookup(id, entityAlive)
	if rec == nil {
		return nil
	}
	cid, ok := s.registry.lookup(compType)
	if !ok {
		return nil
	}
	slot := slotOf(rec, cid)
	if slot < 0 {
		return nil
	}
	return s.pools[cid].Get(slot)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.GetComponent(id, compType) != nil
}

// Components returns pointers to all components of the entity in registration order.
func (s *Storage) Components(id EntityId) []any {
	rec := s.entities.lookup(id, entityAlive)
	if rec == nil {
		return nil
	}
	components := make([]any, 0, len(rec.archetype.types))
	for cid, slot := range rec.slots {
		if slot >= 0 {
			components = append(components, s.pools[cid].Get(int(slot)))
		}
	}
	return components
}

// Archetype returns the archetype the entity currently belongs to, or nil.
func (s *Storage) Archetype(id EntityId) *Archetype {
	rec := s.entities.lookup(id, entityAlive)
	if rec == nil {
		return nil
	}
	return rec.archetype
}

// Archetypes returns all archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.archetypeList
}

// EntityCount returns the number of live entities.
func (s *Storage) EntityCount() int {
	return s.entities.alive
}

// Entities returns the ids of all live entities.
func (s *Storage) Entities() []EntityId {
	ids := make([]EntityId, 0, s.entities.alive)
	for _, a := range s.archetypeList {
		ids = append(ids, a.entities.ids...)
	}
	return ids
}

// Clear destroys every live entity. Singletons are kept.
func (s *Storage) Clear() {
	for _, id := range s.Entities() {
		s.Delete(id)
	}
}

// Family returns the family for def, registering it on first use. Membership is
// seeded from the existing archetypes and kept current afterwards.
func (s *Storage) Family(def FamilyDef) *Family {
	key := def.key(s.registry)
	if f, ok := s.families[key]; ok {
		return f
	}

	f := &Family{def: def, key: key, members: newMemberSet()}
	for _, a := range s.archetypeList {
		if key.matches(a.mask) {
			for _, id := range a.entities.ids {
				f.members.add(id)
			}
		}
	}
	s.families[key] = f
	s.familyList = append(s.familyList, f)
	return f
}

// Families returns all registered families in registration order.
func (s *Storage) Families() []*Family {
	return s.familyList
}

// EntitiesFor returns the live family for def. It is equivalent to Family.
func (s *Storage) EntitiesFor(def FamilyDef) *Family {
	return s.Family(def)
}

// AddListener subscribes l to membership changes of f. A nil family subscribes l to
// every entity: EntityAdded on spawn and EntityRemoved on delete.
func (s *Storage) AddListener(f *Family, l EntityListener) {
	if f == nil {
		s.globalListeners = append(s.globalListeners, l)
		return
	}
	f.listeners = append(f.listeners, l)
}

// Commands returns the storage's internal command buffer, the one listeners receive.
func (s *Storage) Commands() *Commands {
	return s.pending
}

// ComponentReader is implemented by anything that can resolve an entity component by type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil when the entity is dead or has no T.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	c, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return c
}

// MustRead returns the entity's T and panics when it is missing. Use it where a
// family guarantees the component.
func MustRead[T any](reader ComponentReader, entityId EntityId) *T {
	c := ReadComponent[T](reader, entityId)
	if c == nil {
		panic(fmt.Sprintf("ecs: entity %s has no %s component", entityId, reflect.TypeFor[T]()))
	}
	return c
}
