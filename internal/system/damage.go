package system

import (
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/prefab"
)

type damageable struct {
	ecs.EntityId
	Player    *component.Player
	Transform *component.Transform
	Graphic   *component.Graphic `ecs:"optional"`
	Remove    *component.Remove  `ecs:"exclude"`
}

// DamageSystem drains the shield and then the life of players inside the dark matter.
type DamageSystem struct {
	Players ecs.Query[damageable]

	cfg    config.DamageConfig
	events event.Publisher
}

func NewDamageSystem(cfg config.DamageConfig, events event.Publisher) *DamageSystem {
	return &DamageSystem{cfg: cfg, events: events}
}

func (s *DamageSystem) Execute(frame *ecs.UpdateFrame) {
	damage := s.cfg.PerSecond * float32(frame.DeltaTime)

	for p := range s.Players.Values() {
		if p.Transform.Position.Y > s.cfg.AreaHeight {
			continue
		}

		taken := ApplyDamage(p.Player, damage)
		if taken == 0 {
			continue
		}

		if p.Player.IsDead() {
			frame.Commands.AddComponent(p.EntityId, component.Remove{Delay: s.cfg.DeathDelay})
			if p.Graphic != nil {
				p.Graphic.Alpha = 0
			}
			prefab.Explosion(frame.Commands, p.Transform.Position.X, p.Transform.Position.Y, s.cfg.ExplosionSize, s.cfg.DeathDelay)
			s.publish(event.GameOver{Distance: p.Player.Distance})
			continue
		}
		s.publish(event.ShipDamaged{Life: p.Player.Life, MaxLife: p.Player.MaxLife})
	}
}

func (s *DamageSystem) publish(e event.Event) {
	if s.events != nil {
		s.events.Publish(e)
	}
}

// ApplyDamage lets the shield absorb damage before life and returns the damage dealt to life.
// Life never drops below zero.
func ApplyDamage(p *component.Player, damage float32) float32 {
	if p.Shield > 0 {
		absorbed := min(p.Shield, damage)
		p.Shield -= absorbed
		damage -= absorbed
	}
	if damage <= 0 {
		return 0
	}
	p.Life = max(0, p.Life-damage)
	return damage
}
