package ecs

import "reflect"

// iComponentStorage is a type-erased pool of components of a single type.
type iComponentStorage interface {
	Alloc() int
	Free(index int)
	Get(index int) any
	Set(index int, value any) bool
	Has(index int) bool
	Type() reflect.Type
	Live() int
	FreeCount() int
}

// Resetter is implemented by components whose default state is not the zero value.
// Reset is called on every slot handed out by a pool and on every slot returned to it,
// so a recycled component is indistinguishable from a fresh one.
type Resetter interface {
	Reset()
}
