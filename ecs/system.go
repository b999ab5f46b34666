package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query fields
// for accessing entities, as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SetupSystem is implemented by systems that need the storage once at registration,
// typically to subscribe family listeners.
type SetupSystem interface {
	Setup(storage *Storage)
}

// Spawner creates entities. Both *Storage and *Commands implement it.
type Spawner interface {
	Spawn(components ...any) EntityId
}
