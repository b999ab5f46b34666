package ecs

import "fmt"

// EntityId encodes the entity slot index (lower 32 bits) and the slot generation (upper 32 bits).
// The zero value never refers to a live entity.
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%d:%d", e.Index(), e.Generation())
}

type entityState uint8

const (
	entityFree entityState = iota
	entityReserved
	entityAlive
)

// entityRecord is the pooled per-slot bookkeeping of an entity. Records are
// never released, only recycled through the free list with a bumped generation.
type entityRecord struct {
	generation uint32
	state      entityState
	archetype  *Archetype
	slots      []int32
}

// entityPool hands out entity slots and recycles destroyed ones.
type entityPool struct {
	records []entityRecord
	free    []uint32
	alive   int
}

func (p *entityPool) allocate(componentCount int) EntityId {
	var index uint32
	if n := len(p.free); n > 0 {
		index = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		index = uint32(len(p.records))
		p.records = append(p.records, entityRecord{generation: 1})
	}

	rec := &p.records[index]
	rec.state = entityReserved
	if len(rec.slots) < componentCount {
		rec.slots = make([]int32, componentCount)
	}
	for i := range rec.slots {
		rec.slots[i] = -1
	}
	return NewEntityId(index, rec.generation)
}

func (p *entityPool) release(id EntityId) {
	rec := &p.records[id.Index()]
	if rec.state == entityAlive {
		p.alive--
	}
	rec.state = entityFree
	rec.archetype = nil
	rec.generation++
	if rec.generation == 0 {
		rec.generation = 1
	}
	p.free = append(p.free, id.Index())
}

// lookup returns the record for id if its generation is current and it is in the given state.
func (p *entityPool) lookup(id EntityId, state entityState) *entityRecord {
	index := id.Index()
	if int(index) >= len(p.records) {
		return nil
	}
	rec := &p.records[index]
	if rec.generation != id.Generation() || rec.state != state {
		return nil
	}
	return rec
}
