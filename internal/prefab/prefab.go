// Package prefab assembles the game's entities. Every helper works with a Storage
// or a frame's Commands.
package prefab

import (
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/vmath"
)

const (
	UnitScale = 1.0 / 16.0

	ShipStartX = 4.5
	ShipStartY = 7.5
	StartSpeed = 3

	shipFireOffsetX = 1  // pixels
	shipFireOffsetY = -6 // pixels
)

func transform(x, y, z, w, h float32) component.Transform {
	t := component.Transform{Size: vmath.V2(w, h)}
	t.SetInitialPosition(x, y, z)
	return t
}

func graphic() component.Graphic {
	return component.Graphic{Alpha: 1}
}

// PlayerShip spawns the ship and the engine fire attached below it.
func PlayerShip(s ecs.Spawner) (ship, fire ecs.EntityId) {
	p := component.Player{}
	p.Reset()

	ship = s.Spawn(
		transform(ShipStartX, ShipStartY, 1, 1, 1),
		component.Move{Speed: vmath.V2(0, StartSpeed)},
		graphic(),
		p,
		component.Facing{},
	)
	fire = s.Spawn(
		transform(0, 0, 0, 1, 1),
		component.Attach{
			Master: ship,
			Offset: vmath.V2(shipFireOffsetX*UnitScale, shipFireOffsetY*UnitScale),
		},
		graphic(),
		component.Animation{Type: component.AnimationFire},
	)
	return ship, fire
}

// DarkMatter spawns the hazard band along the bottom of the world.
func DarkMatter(s ecs.Spawner, worldWidth, height float32) ecs.EntityId {
	return s.Spawn(
		transform(0, 0, 0, worldWidth, height),
		component.Animation{Type: component.AnimationDarkMatter},
		graphic(),
	)
}

// PowerUp spawns a falling power-up.
func PowerUp(s ecs.Spawner, t component.PowerUpType, x, y, speed float32) ecs.EntityId {
	return s.Spawn(
		transform(x, y, 0, 1, 1),
		component.PowerUp{Type: t},
		component.Animation{Type: t.Animation()},
		graphic(),
		component.Move{Speed: vmath.V2(0, speed)},
	)
}

// Explosion spawns a one shot explosion removed after duration.
func Explosion(s ecs.Spawner, x, y, size, duration float32) ecs.EntityId {
	return s.Spawn(
		transform(x, y, 1, size, size),
		component.Animation{Type: component.AnimationExplosion},
		graphic(),
		component.Remove{Delay: duration},
	)
}
