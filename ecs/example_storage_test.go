package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/darkmatter/ecs"
)

// ExampleStorage demonstrates the basic API for managing entities and components.
// Storage is the core container for all entities and their pooled component data.
func ExampleStorage() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	player := storage.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)

	pos := ecs.ReadComponent[Position](storage, player)
	fmt.Printf("Player spawned at (%.0f, %.0f)\n", pos.X, pos.Y)

	pos.X = 15
	pos.Y = 25
	fmt.Printf("Player moved to (%.0f, %.0f)\n", pos.X, pos.Y)

	storage.Delete(player)
	fmt.Println("Player alive:", storage.Alive(player))

	// Output:
	// Player spawned at (10, 20)
	// Player moved to (15, 25)
	// Player alive: false
}

// ExampleStorage_addRemoveComponents shows that an entity keeps its id while its
// component set changes.
func ExampleStorage_addRemoveComponents() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	storage := ecs.NewStorage(registry)

	entity := storage.Spawn(Position{X: 0, Y: 0})
	fmt.Printf("Has velocity: %v\n", storage.HasComponent(entity, reflect.TypeFor[Velocity]()))

	vel := ecs.Add(storage, entity, func(v *Velocity) { v.DX, v.DY = 5, 3 })
	fmt.Printf("Has velocity: %v (%.0f, %.0f)\n", vel != nil, vel.DX, vel.DY)

	ecs.Remove[Velocity](storage, entity)
	fmt.Printf("Has velocity: %v, alive: %v\n", storage.HasComponent(entity, reflect.TypeFor[Velocity]()), storage.Alive(entity))

	// Output:
	// Has velocity: false
	// Has velocity: true (5, 3)
	// Has velocity: false, alive: true
}
