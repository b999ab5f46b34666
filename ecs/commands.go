package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations. Systems queue structural
// changes here while iterating and the scheduler applies them once the system returns.
type Commands struct {
	storage *Storage
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

// NewCommands creates an empty command buffer bound to storage.
func NewCommands(storage *Storage) *Commands {
	return &Commands{storage: storage}
}

type spawnCommand struct {
	id         EntityId
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function to run after the other queued operations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn and returns the id the entity will have. The id can be
// used in further commands on the same buffer; it is not alive until the flush.
func (c *Commands) Spawn(components ...any) EntityId {
	id := c.storage.reserve()
	c.spawns = append(c.spawns, spawnCommand{id: id, components: components})
	return id
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

func (c *Commands) empty() bool {
	return c.Len() == 0
}

// Flush applies the queued operations: deletes, spawns, removes, adds, then deferred functions.
// Operations on entities that are no longer alive are dropped. Commands queued while flushing,
// including those queued by listeners, are applied before Flush returns.
func (c *Commands) Flush() {
	s := c.storage
	if s.flushing {
		return
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	for !c.empty() || !s.pending.empty() {
		c.apply()
		if c != s.pending {
			s.pending.apply()
		}
	}
}

func (c *Commands) apply() {
	s := c.storage
	deletes, spawns, removes, adds, defers := c.deletes, c.spawns, c.removes, c.adds, c.defers
	c.deletes, c.spawns, c.removes, c.adds, c.defers = nil, nil, nil, nil, nil

	for _, id := range deletes {
		s.Delete(id)
	}

	for _, cmd := range spawns {
		s.materialize(cmd.id, cmd.components)
	}

	for _, cmd := range removes {
		s.RemoveComponent(cmd.entity, cmd.compType)
	}

	for _, cmd := range adds {
		s.AddComponent(cmd.entity, cmd.component)
	}

	for _, fn := range defers {
		fn()
	}
}
