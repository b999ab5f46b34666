package system_test

import (
	"reflect"
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/prefab"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var powerUpFamily = ecs.AllOf(reflect.TypeFor[component.PowerUp]())

func newPowerUpHarness(t *testing.T, mutate func(*config.PowerUpConfig)) (*harness, *system.PowerUpSystem) {
	h := newHarness(t)
	cfg := defaults()
	if mutate != nil {
		mutate(&cfg.PowerUp)
	}
	powerUps := system.NewPowerUpSystem(cfg.World, cfg.PowerUp, h.bus, system.NewRand(7), zap.NewNop())
	h.scheduler.Register(powerUps)
	return h, powerUps
}

func TestPowerUpPickupNeedsOverlap(t *testing.T) {
	tests := []struct {
		name    string
		y       float32
		collect bool
	}{
		{"touching edge", 8, false},
		{"overlapping", 7.99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newPowerUpHarness(t, nil)
			player := spawnPlayer(h.storage, 4, 7, vmath.Vec2{})
			orb := prefab.PowerUp(h.storage, component.PowerUpShield, 4, tt.y, -8.75)

			h.frame(step)

			collected := eventsOf[event.PowerUpCollected](h)
			assert.Equal(t, tt.collect, h.storage.HasComponent(orb, componentTypeRemove))
			if !tt.collect {
				assert.Empty(t, collected)
				return
			}
			require.Len(t, collected, 1)
			assert.Equal(t, component.PowerUpShield, collected[0].Type)
			assert.Equal(t, player, collected[0].Player)
			assert.Equal(t, float32(25), ecs.MustRead[component.Player](h.storage, player).Shield)
		})
	}
}

func TestPowerUpGains(t *testing.T) {
	h, _ := newPowerUpHarness(t, nil)
	player := spawnPlayer(h.storage, 4, 7, vmath.V2(0, 1))
	stats := ecs.MustRead[component.Player](h.storage, player)
	move := ecs.MustRead[component.Move](h.storage, player)
	stats.Life = 90
	stats.Shield = 95

	for _, typ := range []component.PowerUpType{
		component.PowerUpSpeed1,
		component.PowerUpSpeed2,
		component.PowerUpLife,
		component.PowerUpShield,
	} {
		prefab.PowerUp(h.storage, typ, 4, 7.5, -8.75)
	}
	h.frame(step)

	assert.InDelta(t, 1+3+3.75, move.Speed.Y, 1e-5)
	assert.Equal(t, float32(100), stats.Life, "life is clamped to max")
	assert.Equal(t, float32(100), stats.Shield, "shield is clamped to max")
	assert.Len(t, eventsOf[event.PowerUpCollected](h), 4)
}

func TestPowerUpDespawnsAtBottom(t *testing.T) {
	h, _ := newPowerUpHarness(t, nil)
	orb := prefab.PowerUp(h.storage, component.PowerUpLife, 2, 1, -8.75)

	h.frame(step)
	assert.True(t, h.storage.HasComponent(orb, componentTypeRemove))
	assert.Empty(t, eventsOf[event.PowerUpCollected](h))
}

func TestPowerUpSpawnSchedule(t *testing.T) {
	h, powerUps := newPowerUpHarness(t, func(cfg *config.PowerUpConfig) {
		cfg.MinInterval = 1
		cfg.MaxInterval = 1
	})
	family := h.storage.Family(powerUpFamily)

	h.frame(step)
	require.Len(t, powerUps.Pending(), 4, "first tick starts a pattern")
	spawned := family.Len()

	h.frame(0.5)
	assert.Len(t, powerUps.Pending(), 4, "no tick before the interval elapses")

	for range 4 {
		h.frame(1)
	}
	assert.Empty(t, powerUps.Pending())

	total := family.Len()
	nones := 0
	for _, pattern := range system.SpawnPatterns {
		require.Len(t, pattern, 5)
		for _, typ := range pattern {
			if typ == component.PowerUpNone {
				nones++
			}
		}
	}
	assert.Greater(t, nones, 0)
	assert.LessOrEqual(t, total, 5)
	assert.GreaterOrEqual(t, total, spawned)

	for _, id := range family.Entities() {
		transform := ecs.MustRead[component.Transform](h.storage, id)
		assert.Equal(t, float32(16), transform.Position.Y)
		assert.GreaterOrEqual(t, transform.Position.X, float32(0))
		assert.LessOrEqual(t, transform.Position.X, float32(8))
		assert.Equal(t, transform.Position.X, float32(int(transform.Position.X)))
	}

	powerUps.Reset()
	assert.Empty(t, powerUps.Pending())
}
