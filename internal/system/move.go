package system

import (
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/vmath"
)

type moving struct {
	Transform *component.Transform
	Move      *component.Move
	Player    *component.Player `ecs:"optional"`
	Facing    *component.Facing `ecs:"optional"`
	Remove    *component.Remove `ecs:"exclude"`
}

// MoveSystem integrates velocities at a fixed step and interpolates the drawn
// position between the last two steps.
type MoveSystem struct {
	Entities ecs.Query[moving]

	world       config.WorldConfig
	cfg         config.MoveConfig
	events      event.Publisher
	accumulator float32
}

func NewMoveSystem(world config.WorldConfig, cfg config.MoveConfig, events event.Publisher) *MoveSystem {
	return &MoveSystem{world: world, cfg: cfg, events: events}
}

// Accumulator returns the simulated time not yet consumed by a fixed step.
func (s *MoveSystem) Accumulator() float32 {
	return s.accumulator
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	step := s.cfg.FixedStep
	s.accumulator += float32(frame.DeltaTime)

	for s.accumulator >= step {
		s.accumulator -= step

		for e := range s.Entities.Values() {
			e.Transform.PrevPosition = e.Transform.Position
		}
		for e := range s.Entities.Values() {
			if e.Player != nil && e.Facing != nil {
				s.movePlayer(e, step)
			} else {
				s.moveEntity(e.Transform, e.Move, step)
			}
		}
	}

	alpha := s.accumulator / step
	for e := range s.Entities.Values() {
		t := e.Transform
		t.InterpolatedPosition = vmath.V3(
			vmath.Lerp(t.PrevPosition.X, t.Position.X, alpha),
			vmath.Lerp(t.PrevPosition.Y, t.Position.Y, alpha),
			t.Position.Z,
		)
	}
}

func (s *MoveSystem) movePlayer(e moving, dt float32) {
	speed := &e.Move.Speed
	accel := s.cfg.HorizontalAcceleration * dt

	switch e.Facing.Direction {
	case component.FacingLeft:
		speed.X = min(0, speed.X-accel)
	case component.FacingRight:
		speed.X = max(0, speed.X+accel)
	default:
		speed.X = 0
	}
	speed.X = vmath.Clamp(speed.X, -s.cfg.MaxHorizontalSpeed, s.cfg.MaxHorizontalSpeed)
	speed.Y = vmath.Clamp(speed.Y-s.cfg.VerticalAcceleration*dt, -s.cfg.MaxVerticalNegative, s.cfg.MaxVerticalPositive)

	previousY := e.Transform.Position.Y
	s.moveEntity(e.Transform, e.Move, dt)

	if delta := vmath.Abs(e.Transform.Position.Y - previousY); delta != 0 {
		e.Player.Distance += delta
		if s.events != nil {
			s.events.Publish(event.PlayerMove{Distance: e.Player.Distance, Speed: speed.Y})
		}
	}
}

func (s *MoveSystem) moveEntity(t *component.Transform, m *component.Move, dt float32) {
	t.Position.X = vmath.Clamp(t.Position.X+m.Speed.X*dt, 0, s.world.Width-t.Size.X)
	t.Position.Y = vmath.Clamp(
		t.Position.Y+m.Speed.Y*dt,
		s.cfg.FloorHeight,
		s.world.Height+s.cfg.FloorHeight-t.Size.Y,
	)
}
