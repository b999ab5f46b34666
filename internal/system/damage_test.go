package system_test

import (
	"reflect"
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDamageShieldFirst(t *testing.T) {
	p := component.Player{Life: 50, MaxLife: 100, Shield: 10, MaxShield: 100}
	assert.Equal(t, float32(5), system.ApplyDamage(&p, 15))
	assert.Equal(t, float32(0), p.Shield)
	assert.Equal(t, float32(45), p.Life)

	p = component.Player{Life: 50, MaxLife: 100, MaxShield: 100}
	assert.Equal(t, float32(15), system.ApplyDamage(&p, 15))
	assert.Equal(t, float32(0), p.Shield)
	assert.Equal(t, float32(35), p.Life)

	p = component.Player{Life: 50, MaxLife: 100, Shield: 20, MaxShield: 100}
	assert.Equal(t, float32(0), system.ApplyDamage(&p, 15))
	assert.Equal(t, float32(5), p.Shield)
	assert.Equal(t, float32(50), p.Life)

	p = component.Player{Life: 5, MaxLife: 100}
	system.ApplyDamage(&p, 15)
	assert.Equal(t, float32(0), p.Life)
	assert.True(t, p.IsDead())
}

func newDamageHarness(t *testing.T) *harness {
	h := newHarness(t)
	cfg := defaults()
	h.scheduler.Register(system.NewDamageSystem(cfg.Damage, h.bus), &system.RemoveSystem{})
	return h
}

func TestDamageOnlyInsideHazard(t *testing.T) {
	h := newDamageHarness(t)
	id := spawnPlayer(h.storage, 4, 1.6, vmath.Vec2{})
	player := ecs.MustRead[component.Player](h.storage, id)

	h.frame(step)
	assert.Equal(t, float32(100), player.Life)
	assert.Empty(t, h.events)

	ecs.MustRead[component.Transform](h.storage, id).Position.Y = 1.5
	h.frame(step)
	assert.InDelta(t, 99, player.Life, 1e-4)

	damaged := eventsOf[event.ShipDamaged](h)
	require.Len(t, damaged, 1)
	assert.Equal(t, player.Life, damaged[0].Life)
	assert.Equal(t, float32(100), damaged[0].MaxLife)
}

func TestDamageAbsorbedByShieldIsSilent(t *testing.T) {
	h := newDamageHarness(t)
	id := spawnPlayer(h.storage, 4, 1, vmath.Vec2{})
	player := ecs.MustRead[component.Player](h.storage, id)
	player.Shield = 50

	h.frame(step)
	assert.InDelta(t, 49, player.Shield, 1e-4)
	assert.Equal(t, float32(100), player.Life)
	assert.Empty(t, eventsOf[event.ShipDamaged](h))
}

func TestDeathIsDeferred(t *testing.T) {
	h := newDamageHarness(t)
	id := spawnPlayer(h.storage, 4, 1, vmath.Vec2{})
	player := ecs.MustRead[component.Player](h.storage, id)
	player.Life = 0.5
	player.Distance = 42

	h.frame(step)

	require.True(t, h.storage.Alive(id))
	remove := ecs.ReadComponent[component.Remove](h.storage, id)
	require.NotNil(t, remove)
	assert.InDelta(t, 0.9-step, remove.Delay, 1e-5)
	assert.Equal(t, float32(0), ecs.MustRead[component.Graphic](h.storage, id).Alpha)
	assert.Equal(t, float32(0), player.Life)

	over := eventsOf[event.GameOver](h)
	require.Len(t, over, 1)
	assert.Equal(t, float32(42), over[0].Distance)

	explosions := h.storage.Family(ecs.AllOf(reflect.TypeFor[component.Animation]()))
	require.Equal(t, 1, explosions.Len())
	boom := explosions.Entities()[0]
	assert.Equal(t, component.AnimationExplosion, ecs.MustRead[component.Animation](h.storage, boom).Type)
	assert.Equal(t, vmath.V3(4, 1, 1), ecs.MustRead[component.Transform](h.storage, boom).Position)
	assert.Equal(t, vmath.V2(1.5, 1.5), ecs.MustRead[component.Transform](h.storage, boom).Size)

	h.frames(20, step)
	assert.True(t, h.storage.Alive(id), "still alive before the death delay")
	assert.Len(t, eventsOf[event.GameOver](h), 1, "dead ship takes no more damage")
	assert.Empty(t, eventsOf[event.ShipDamaged](h))

	h.frames(5, step)
	assert.False(t, h.storage.Alive(id))
	assert.Equal(t, 0, h.storage.EntityCount(), "explosion is removed with the ship")
}
