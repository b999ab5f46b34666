package system

import (
	"fmt"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/vmath"
)

type DebugKey uint8

const (
	DebugToggleMove DebugKey = iota
	DebugShield
	DebugDown
	DebugUp
	DebugKill
)

// Keys reports whether a debug key is held.
type Keys interface {
	Pressed(k DebugKey) bool
}

type cheatable struct {
	Player    *component.Player
	Transform *component.Transform
}

// DebugSystem applies keyboard cheats at a fixed interval and reports the player state.
type DebugSystem struct {
	Players ecs.Query[cheatable]

	keys      Keys
	world     config.WorldConfig
	cfg       config.DebugConfig
	status    func(string)
	scheduler *ecs.Scheduler
	move      ecs.System
	elapsed   float32
}

func NewDebugSystem(keys Keys, world config.WorldConfig, cfg config.DebugConfig, status func(string)) *DebugSystem {
	return &DebugSystem{keys: keys, world: world, cfg: cfg, status: status}
}

// Bind lets the toggle key pause and resume move on scheduler.
func (s *DebugSystem) Bind(scheduler *ecs.Scheduler, move ecs.System) {
	s.scheduler = scheduler
	s.move = move
}

func (s *DebugSystem) Execute(frame *ecs.UpdateFrame) {
	s.elapsed += float32(frame.DeltaTime)
	if s.elapsed < s.cfg.KeyInterval {
		return
	}
	s.elapsed -= s.cfg.KeyInterval

	for p := range s.Players.Values() {
		s.apply(p)
		if s.status != nil {
			s.status(fmt.Sprintf("DM => Life:%d, Shield:%d, Distance:%d",
				int(p.Player.Life), int(p.Player.Shield), int(p.Player.Distance)))
		}
	}
}

func (s *DebugSystem) apply(p cheatable) {
	switch {
	case s.keys.Pressed(DebugToggleMove):
		if s.scheduler != nil {
			s.scheduler.SetEnabled(s.move, !s.scheduler.Enabled(s.move))
		}
	case s.keys.Pressed(DebugShield):
		p.Player.Shield = min(p.Player.MaxShield, p.Player.Shield+s.cfg.ShieldCheat)
	case s.keys.Pressed(DebugDown):
		s.shiftY(p.Transform, -1)
	case s.keys.Pressed(DebugUp):
		s.shiftY(p.Transform, 1)
	case s.keys.Pressed(DebugKill):
		p.Transform.Position.Y = 1
		p.Player.Shield = 0
		p.Player.Life = 0
	}
}

func (s *DebugSystem) shiftY(t *component.Transform, dy float32) {
	t.Position.Y = vmath.Clamp(t.Position.Y+dy, 1, s.world.Height-t.Size.Y)
}
