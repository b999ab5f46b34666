package system_test

import (
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
	"github.com/stretchr/testify/assert"
)

type pointerAt struct{ x float32 }

func (p *pointerAt) PointerX() float32 { return p.x }

func TestInputFacesThePointer(t *testing.T) {
	h := newHarness(t)
	pointer := &pointerAt{}
	h.scheduler.Register(system.NewInputSystem(pointer, identityViewport{}))

	id := spawnPlayer(h.storage, 4, 7, vmath.Vec2{})
	facing := ecs.MustRead[component.Facing](h.storage, id)

	tests := []struct {
		x    float32
		want component.FacingDirection
	}{
		{4.5, component.FacingDefault},
		{4.69, component.FacingDefault},
		{4.31, component.FacingDefault},
		{4.8, component.FacingRight},
		{4.2, component.FacingLeft},
		{0, component.FacingLeft},
		{9, component.FacingRight},
	}
	for _, tt := range tests {
		pointer.x = tt.x
		h.frame(step)
		assert.Equal(t, tt.want, facing.Direction, "pointer at %v", tt.x)
	}
}

func TestInputRemembersPreviousDirection(t *testing.T) {
	h := newHarness(t)
	pointer := &pointerAt{x: 9}
	h.scheduler.Register(system.NewInputSystem(pointer, identityViewport{}))

	id := spawnPlayer(h.storage, 4, 7, vmath.Vec2{})
	facing := ecs.MustRead[component.Facing](h.storage, id)

	h.frame(step)
	assert.True(t, facing.Changed())
	h.frame(step)
	assert.False(t, facing.Changed())
	assert.Equal(t, component.FacingRight, facing.Previous)
}

func TestPlayerAnimationFollowsFacing(t *testing.T) {
	h := newHarness(t)
	pointer := &pointerAt{x: 4.5}
	h.scheduler.Register(
		system.NewInputSystem(pointer, identityViewport{}),
		system.NewPlayerAnimationSystem(newAtlas()),
	)

	id := spawnPlayer(h.storage, 4, 7, vmath.Vec2{})
	assert.Equal(t, "ship_base", regionOf(h, id), "set when the ship spawns")

	pointer.x = 0
	h.frame(step)
	assert.Equal(t, "ship_left", regionOf(h, id))

	pointer.x = 9
	h.frame(step)
	assert.Equal(t, "ship_right", regionOf(h, id))

	pointer.x = 4.5
	h.frame(step)
	assert.Equal(t, "ship_base", regionOf(h, id))
}

func TestRemoveAfterDelay(t *testing.T) {
	h := newHarness(t)
	h.scheduler.Register(&system.RemoveSystem{})

	now := h.storage.Spawn(component.Remove{})
	later := h.storage.Spawn(component.Remove{Delay: 0.1})
	kept := h.storage.Spawn(component.Transform{})

	h.frame(step)
	assert.False(t, h.storage.Alive(now))
	assert.True(t, h.storage.Alive(later))

	h.frames(2, step)
	assert.False(t, h.storage.Alive(later))
	assert.True(t, h.storage.Alive(kept))
}
