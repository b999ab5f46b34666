package system_test

import (
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/prefab"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type run struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	set       *system.Set
	bus       *event.Bus
	renderer  *recordingRenderer
	over      int
}

func newRun(seed uint64) *run {
	cfg := defaults()
	cfg.Debug.Enabled = true

	r := &run{bus: event.NewBus(), renderer: &recordingRenderer{}}
	r.storage = ecs.NewStorage(component.NewRegistry())
	r.scheduler = ecs.NewScheduler(r.storage)
	r.set = system.NewSet(system.Deps{
		Config:   cfg,
		Events:   r.bus,
		Rand:     system.NewRand(seed),
		Pointer:  fixedPointer(2),
		Viewport: identityViewport{},
		Atlas:    newAtlas(),
		Renderer: r.renderer,
		Camera:   &fakeCamera{},
		Keys:     heldKeys{},
	})
	r.set.Register(r.scheduler)
	event.Subscribe(r.bus, func(event.GameOver) { r.over++ })

	prefab.DarkMatter(r.storage, cfg.World.Width, cfg.Damage.AreaHeight)
	prefab.PlayerShip(r.storage)
	return r
}

func (r *run) play(frames int) {
	for range frames {
		r.scheduler.Once(1.0 / 60.0)
		r.bus.Dispatch()
	}
}

func TestSetOrder(t *testing.T) {
	r := newRun(1)
	var names []string
	for _, s := range r.scheduler.GetStats().Systems {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"InputSystem", "PlayerAnimationSystem", "MoveSystem", "PowerUpSystem", "DamageSystem",
		"CameraShakeSystem", "DebugSystem", "AttachSystem", "AnimationSystem", "RenderSystem", "RemoveSystem",
	}, names)
}

func TestSetWithoutOptionalCollaborators(t *testing.T) {
	set := system.NewSet(system.Deps{Config: defaults()})
	assert.Len(t, set.Systems(), 6)
	assert.Nil(t, set.Input)
	assert.Nil(t, set.Debug)
}

func TestSetPauseKeepsRendering(t *testing.T) {
	r := newRun(1)
	r.set.SetGameplayEnabled(r.scheduler, false)
	r.play(10)

	assert.Len(t, r.renderer.frames, 10)
	assert.Equal(t, float32(0), r.set.Move.Accumulator())
	assert.False(t, r.scheduler.Enabled(r.set.Move))
	assert.True(t, r.scheduler.Enabled(r.set.Render))

	r.set.SetGameplayEnabled(r.scheduler, true)
	assert.True(t, r.scheduler.Enabled(r.set.Move))
}

func TestShipFallsIntoDarkMatter(t *testing.T) {
	r := newRun(3)
	r.scheduler.SetEnabled(r.set.PowerUp, false)

	r.play(60 * 60)
	require.Equal(t, 1, r.over, "one game over")
	assert.Zero(t, r.set.Damage.Players.Family().Len())
}

func TestSimulationIsDeterministic(t *testing.T) {
	a, b, c := newRun(11), newRun(11), newRun(12)
	a.play(600)
	b.play(600)
	c.play(600)

	assert.Equal(t, system.WorldDigest(a.storage), system.WorldDigest(b.storage))
	assert.NotEqual(t, system.WorldDigest(a.storage), system.WorldDigest(c.storage))
}
