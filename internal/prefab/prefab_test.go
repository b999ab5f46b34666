package prefab_test

import (
	"reflect"
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/prefab"
	"github.com/plus3/darkmatter/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerShip(t *testing.T) {
	storage := ecs.NewStorage(component.NewRegistry())
	ship, fire := prefab.PlayerShip(storage)

	transform := ecs.MustRead[component.Transform](storage, ship)
	assert.Equal(t, vmath.V3(4.5, 7.5, 1), transform.Position)
	assert.Equal(t, transform.Position, transform.PrevPosition)
	assert.Equal(t, vmath.V2(1, 1), transform.Size)
	assert.Equal(t, float32(3), ecs.MustRead[component.Move](storage, ship).Speed.Y)
	assert.Equal(t, float32(100), ecs.MustRead[component.Player](storage, ship).Life)
	assert.Equal(t, float32(1), ecs.MustRead[component.Graphic](storage, ship).Alpha)
	assert.True(t, storage.HasComponent(ship, reflect.TypeFor[component.Facing]()))

	attach := ecs.MustRead[component.Attach](storage, fire)
	assert.Equal(t, ship, attach.Master)
	assert.InDelta(t, 1.0/16.0, attach.Offset.X, 1e-6)
	assert.InDelta(t, -6.0/16.0, attach.Offset.Y, 1e-6)
	assert.Equal(t, component.AnimationFire, ecs.MustRead[component.Animation](storage, fire).Type)
}

func TestPowerUpAndExplosionThroughCommands(t *testing.T) {
	storage := ecs.NewStorage(component.NewRegistry())
	cmds := ecs.NewCommands(storage)

	orb := prefab.PowerUp(cmds, component.PowerUpSpeed2, 3, 16, -8.75)
	boom := prefab.Explosion(cmds, 2, 1, 1.5, 0.9)
	assert.False(t, storage.Alive(orb))

	cmds.Flush()
	require.True(t, storage.Alive(orb))
	require.True(t, storage.Alive(boom))

	assert.Equal(t, component.PowerUpSpeed2, ecs.MustRead[component.PowerUp](storage, orb).Type)
	assert.Equal(t, component.AnimationSpeed2, ecs.MustRead[component.Animation](storage, orb).Type)
	assert.Equal(t, float32(-8.75), ecs.MustRead[component.Move](storage, orb).Speed.Y)

	assert.Equal(t, vmath.V2(1.5, 1.5), ecs.MustRead[component.Transform](storage, boom).Size)
	assert.Equal(t, float32(1), ecs.MustRead[component.Transform](storage, boom).Position.Z)
	assert.Equal(t, float32(0.9), ecs.MustRead[component.Remove](storage, boom).Delay)
}

func TestDarkMatter(t *testing.T) {
	storage := ecs.NewStorage(component.NewRegistry())
	id := prefab.DarkMatter(storage, 9, 1.5)
	assert.Equal(t, vmath.V2(9, 1.5), ecs.MustRead[component.Transform](storage, id).Size)
	assert.Equal(t, component.AnimationDarkMatter, ecs.MustRead[component.Animation](storage, id).Type)
}
