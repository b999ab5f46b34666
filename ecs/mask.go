package ecs

// MaxComponentTypes is the number of distinct component types a registry can hold.
const MaxComponentTypes = 256

// mask is a set of up to 256 component IDs. Each archetype is identified by one.
type mask [4]uint64

func (m *mask) set(id ComponentId) {
	m[id>>6] |= uint64(1) << (id & 63)
}

func (m *mask) unset(id ComponentId) {
	m[id>>6] &^= uint64(1) << (id & 63)
}

func (m mask) has(id ComponentId) bool {
	return m[id>>6]&(uint64(1)<<(id&63)) != 0
}

// contains reports whether every bit of sub is also set in m.
func (m mask) contains(sub mask) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

// intersects reports whether m and other share at least one bit.
func (m mask) intersects(other mask) bool {
	return m[0]&other[0] != 0 ||
		m[1]&other[1] != 0 ||
		m[2]&other[2] != 0 ||
		m[3]&other[3] != 0
}

func (m mask) isZero() bool {
	return m == mask{}
}
