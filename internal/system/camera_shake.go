package system

import (
	"math/rand/v2"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/vmath"
)

// Camera is the game camera the shake moves.
type Camera interface {
	Position() vmath.Vec2
	SetPosition(p vmath.Vec2)
}

type cameraShake struct {
	duration      float32
	maxDistortion float32
	elapsed       float32
	origin        vmath.Vec2
	started       bool
}

// update jitters the camera and reports whether the shake is over, in which case the
// camera is back at its origin.
func (c *cameraShake) update(camera Camera, rng *rand.Rand, dt float32) bool {
	if !c.started {
		c.started = true
		c.origin = camera.Position()
	}
	if c.elapsed < c.duration {
		power := c.maxDistortion * ((c.duration - c.elapsed) / c.duration)
		camera.SetPosition(vmath.V2(
			c.origin.X+(rng.Float32()*2-1)*power,
			c.origin.Y+(rng.Float32()*2-1)*power,
		))
		c.elapsed += dt
		return false
	}
	camera.SetPosition(c.origin)
	return true
}

// CameraShakeSystem shakes the camera once for every ShipDamaged event, one shake at a time.
type CameraShakeSystem struct {
	camera Camera
	cfg    config.DamageConfig
	rng    *rand.Rand
	active []*cameraShake
	free   []*cameraShake
}

func NewCameraShakeSystem(camera Camera, cfg config.DamageConfig, events *event.Bus, rng *rand.Rand) *CameraShakeSystem {
	s := &CameraShakeSystem{camera: camera, cfg: cfg, rng: rng}
	if events != nil {
		event.Subscribe(events, func(event.ShipDamaged) { s.Shake() })
	}
	return s
}

// Shake queues a shake unless the queue is full.
func (s *CameraShakeSystem) Shake() {
	if len(s.active) >= s.cfg.MaxShakes {
		return
	}
	var shake *cameraShake
	if n := len(s.free); n > 0 {
		shake = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		shake = &cameraShake{}
	}
	*shake = cameraShake{duration: s.cfg.ShakeDuration, maxDistortion: s.cfg.ShakeDistortion}
	s.active = append(s.active, shake)
}

// Queued returns the number of shakes waiting or running.
func (s *CameraShakeSystem) Queued() int {
	return len(s.active)
}

func (s *CameraShakeSystem) Execute(frame *ecs.UpdateFrame) {
	if len(s.active) == 0 {
		return
	}
	shake := s.active[0]
	if shake.update(s.camera, s.rng, float32(frame.DeltaTime)) {
		copy(s.active, s.active[1:])
		s.active[len(s.active)-1] = nil
		s.active = s.active[:len(s.active)-1]
		s.free = append(s.free, shake)
	}
}
