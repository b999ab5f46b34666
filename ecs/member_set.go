package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// memberSet is an unordered set of entity IDs that supports mutation while
// being iterated. Iterators hold a snapshot of the backing slice; the first
// mutation after a snapshot was taken copies the slice before changing it.
type memberSet struct {
	ids     []EntityId
	index   *intmap.Map[EntityId, int]
	readers int
	shared  bool
}

func newMemberSet() memberSet {
	return memberSet{index: intmap.New[EntityId, int](64)}
}

func (m *memberSet) detach() {
	if m.shared {
		m.ids = slices.Clone(m.ids)
		m.shared = false
	}
}

func (m *memberSet) add(id EntityId) bool {
	if _, ok := m.index.Get(id); ok {
		return false
	}
	m.detach()
	m.index.Put(id, len(m.ids))
	m.ids = append(m.ids, id)
	return true
}

func (m *memberSet) remove(id EntityId) bool {
	pos, ok := m.index.Get(id)
	if !ok {
		return false
	}
	m.detach()
	last := len(m.ids) - 1
	if pos != last {
		moved := m.ids[last]
		m.ids[pos] = moved
		m.index.Put(moved, pos)
	}
	m.ids = m.ids[:last]
	m.index.Del(id)
	return true
}

func (m *memberSet) contains(id EntityId) bool {
	_, ok := m.index.Get(id)
	return ok
}

func (m *memberSet) len() int {
	return len(m.ids)
}

// snapshot returns the current members. They stay unchanged until release is called.
func (m *memberSet) snapshot() (ids []EntityId, release func()) {
	m.readers++
	m.shared = true
	return m.ids, func() {
		m.readers--
		if m.readers == 0 {
			m.shared = false
		}
	}
}
