package system

import (
	"math/rand/v2"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/prefab"
	"go.uber.org/zap"
)

const (
	none   = component.PowerUpNone
	speed1 = component.PowerUpSpeed1
	speed2 = component.PowerUpSpeed2
	life   = component.PowerUpLife
	shield = component.PowerUpShield
)

// SpawnPatterns are the power-up sequences the spawner picks from. A none slot spawns nothing.
var SpawnPatterns = [][]component.PowerUpType{
	{speed1, speed2, none, none, shield},
	{speed2, life, none, none, speed1},
	{none, speed1, none, speed1, speed1},
	{none, speed1, none, speed1, none},
	{shield, shield, none, life, speed2},
}

type fallingPowerUp struct {
	ecs.EntityId
	PowerUp   *component.PowerUp
	Transform *component.Transform
	Remove    *component.Remove `ecs:"exclude"`
}

type collector struct {
	ecs.EntityId
	Player    *component.Player
	Transform *component.Transform
	Move      *component.Move   `ecs:"optional"`
	Remove    *component.Remove `ecs:"exclude"`
}

// PowerUpSystem spawns power-ups from random patterns and applies them to players they touch.
type PowerUpSystem struct {
	PowerUps ecs.Query[fallingPowerUp]
	Players  ecs.Query[collector]

	world   config.WorldConfig
	cfg     config.PowerUpConfig
	events  event.Publisher
	rng     *rand.Rand
	log     *zap.Logger
	timer   float32
	pattern []component.PowerUpType
}

func NewPowerUpSystem(world config.WorldConfig, cfg config.PowerUpConfig, events event.Publisher, rng *rand.Rand, log *zap.Logger) *PowerUpSystem {
	return &PowerUpSystem{world: world, cfg: cfg, events: events, rng: rng, log: log}
}

// Reset clears the spawn timer and the pattern in progress.
func (s *PowerUpSystem) Reset() {
	s.timer = 0
	s.pattern = s.pattern[:0]
}

// Pending returns the pattern slots not spawned yet.
func (s *PowerUpSystem) Pending() []component.PowerUpType {
	return s.pattern
}

func (s *PowerUpSystem) Execute(frame *ecs.UpdateFrame) {
	for p := range s.PowerUps.Values() {
		if p.Transform.Position.Y <= s.cfg.DespawnY {
			frame.Commands.AddComponent(p.EntityId, component.Remove{})
			continue
		}

		bounds := p.Transform.Bounds()
		for player := range s.Players.Values() {
			if player.Transform.Bounds().Overlaps(bounds) {
				s.collect(frame, player, p)
			}
		}
	}

	s.timer -= float32(frame.DeltaTime)
	if s.timer > 0 {
		return
	}
	s.timer = s.cfg.MinInterval + s.rng.Float32()*(s.cfg.MaxInterval-s.cfg.MinInterval)

	if len(s.pattern) == 0 {
		s.pattern = append(s.pattern, SpawnPatterns[s.rng.IntN(len(SpawnPatterns))]...)
		s.log.Debug("next pattern", zap.Stringers("types", s.pattern))
	}

	next := s.pattern[0]
	s.pattern = s.pattern[1:]
	if next == component.PowerUpNone {
		return
	}
	x := float32(s.rng.IntN(int(s.world.Width)))
	prefab.PowerUp(frame.Commands, next, x, s.cfg.SpawnY, s.cfg.Speed)
}

func (s *PowerUpSystem) collect(frame *ecs.UpdateFrame, player collector, p fallingPowerUp) {
	t := p.PowerUp.Type
	s.log.Debug("collected power-up", zap.Stringer("type", t), zap.Stringer("player", player.EntityId))

	if player.Move != nil {
		player.Move.Speed.Y += s.speedGain(t)
	}
	switch t {
	case component.PowerUpLife:
		player.Player.Life = min(player.Player.MaxLife, player.Player.Life+s.cfg.LifeGain)
	case component.PowerUpShield:
		player.Player.Shield = min(player.Player.MaxShield, player.Player.Shield+s.cfg.ShieldGain)
	}

	if s.events != nil {
		s.events.Publish(event.PowerUpCollected{Type: t, Player: player.EntityId})
	}
	frame.Commands.AddComponent(p.EntityId, component.Remove{})
}

func (s *PowerUpSystem) speedGain(t component.PowerUpType) float32 {
	switch t {
	case component.PowerUpSpeed1:
		return s.cfg.Speed1Gain
	case component.PowerUpSpeed2:
		return s.cfg.Speed2Gain
	default:
		return 0
	}
}
