package system_test

import (
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func spawnAnimated(s ecs.Spawner, typ component.AnimationType) ecs.EntityId {
	return s.Spawn(
		component.Transform{Size: vmath.V2(1, 1)},
		component.Animation{Type: typ},
		component.Graphic{Alpha: 1},
	)
}

func regionOf(h *harness, id ecs.EntityId) string {
	g := ecs.MustRead[component.Graphic](h.storage, id)
	if g.Region == nil {
		return ""
	}
	return g.Region.Name()
}

func TestAnimationFirstFrameOnSpawn(t *testing.T) {
	h := newHarness(t)
	h.scheduler.Register(system.NewAnimationSystem(newAtlas(), zap.NewNop()))

	id := spawnAnimated(h.storage, component.AnimationFire)
	assert.Equal(t, "fire_0", regionOf(h, id), "bound before the first frame")

	h.frame(0.06)
	assert.Equal(t, "fire_1", regionOf(h, id))
	h.frame(0.05)
	assert.Equal(t, "fire_0", regionOf(h, id), "fire loops")
}

func TestAnimationBindsExistingEntities(t *testing.T) {
	h := newHarness(t)
	id := spawnAnimated(h.storage, component.AnimationDarkMatter)

	h.scheduler.Register(system.NewAnimationSystem(newAtlas(), zap.NewNop()))
	assert.Equal(t, "dm_0", regionOf(h, id))
}

func TestAnimationRebindsOnTypeChange(t *testing.T) {
	h := newHarness(t)
	h.scheduler.Register(system.NewAnimationSystem(newAtlas(), zap.NewNop()))

	id := spawnAnimated(h.storage, component.AnimationFire)
	h.frame(0.06)
	anim := ecs.MustRead[component.Animation](h.storage, id)
	assert.InDelta(t, 0.06, anim.StateTime, 1e-6)

	anim.Type = component.AnimationExplosion
	h.frame(0.5)
	assert.Equal(t, float32(0), anim.StateTime)
	assert.Equal(t, component.AnimationExplosion, anim.Clip.Type)
	assert.Equal(t, "boom_0", regionOf(h, id))

	h.frame(5)
	assert.Equal(t, "boom_1", regionOf(h, id), "explosion holds its last frame")
}

func TestAnimationFallsBackToErrorFrames(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := newHarness(t)
	animations := system.NewAnimationSystem(newAtlas(), zap.New(core))
	h.scheduler.Register(animations)

	id := spawnAnimated(h.storage, component.AnimationLife)
	assert.Equal(t, "error", regionOf(h, id))
	assert.Equal(t, 1, logs.FilterMessage("no regions for animation").Len())

	spawnAnimated(h.storage, component.AnimationLife)
	assert.Equal(t, 1, logs.FilterMessage("no regions for animation").Len(), "clips are cached")
	assert.Same(t, animations.Clip(component.AnimationLife), animations.Clip(component.AnimationLife))
}

func TestAnimationWithoutTypeIsLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := newHarness(t)
	h.scheduler.Register(system.NewAnimationSystem(newAtlas(), zap.New(core)))

	id := spawnAnimated(h.storage, component.AnimationNone)
	h.frame(step)

	assert.Equal(t, 1, logs.FilterMessage("animation without type").Len())
	assert.Equal(t, float32(0), ecs.MustRead[component.Animation](h.storage, id).StateTime)
}

func TestAnimationPanicsWithoutErrorFrames(t *testing.T) {
	animations := system.NewAnimationSystem(fakeAtlas{}, zap.NewNop())
	assert.Panics(t, func() {
		animations.Clip(component.AnimationShield)
	})
}
