package system_test

import (
	"testing"

	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
	"github.com/stretchr/testify/assert"
)

func TestCameraShake(t *testing.T) {
	h := newHarness(t)
	camera := &fakeCamera{pos: vmath.V2(4.5, 8)}
	shake := system.NewCameraShakeSystem(camera, defaults().Damage, h.bus, system.NewRand(1))
	h.scheduler.Register(shake)

	for range 6 {
		h.bus.Publish(event.ShipDamaged{Life: 50, MaxLife: 100})
	}
	h.bus.Dispatch()
	assert.Equal(t, 4, shake.Queued(), "at most four queued shakes")

	h.frame(0.1)
	assert.LessOrEqual(t, vmath.Abs(camera.pos.X-4.5), float32(0.25))
	assert.LessOrEqual(t, vmath.Abs(camera.pos.Y-8), float32(0.25))

	h.frames(3, 0.1)
	assert.Equal(t, vmath.V2(4.5, 8), camera.pos, "camera returns to its origin")
	assert.Equal(t, 3, shake.Queued())

	h.frames(40, 0.1)
	assert.Equal(t, 0, shake.Queued())
	assert.Equal(t, vmath.V2(4.5, 8), camera.pos)

	moves := camera.moves
	h.frame(0.1)
	assert.Equal(t, moves, camera.moves, "idle without shakes")
}
