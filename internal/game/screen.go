package game

import (
	"fmt"
	"math"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/prefab"
	"go.uber.org/zap"
)

// GameOverDelay is how long the explosion plays before the game over screen.
const GameOverDelay = 2.0

// Screen is one state of the game. Update returns the screen to switch to, or nil to stay.
type Screen interface {
	Show()
	Hide()
	Update(dt float64, touched bool) Screen
}

// GameScreen runs a round. It waits for the first touch, spawns the ship and plays until
// the ship is destroyed.
type GameScreen struct {
	ctx      *Context
	gameOver *GameOverScreen

	active   bool
	paused   bool
	leaving  float64
	distance float32
	life     [2]float32
	shield   [2]float32
}

func NewGameScreen(ctx *Context) *GameScreen {
	s := &GameScreen{ctx: ctx}
	s.gameOver = &GameOverScreen{ctx: ctx, game: s}
	prefab.DarkMatter(ctx.Storage, ctx.Config.World.Width, ctx.Config.Damage.AreaHeight)

	event.Subscribe(ctx.Events, s.onRestart)
	event.Subscribe(ctx.Events, s.onSpawn)
	event.Subscribe(ctx.Events, s.onMove)
	event.Subscribe(ctx.Events, s.onDamaged)
	event.Subscribe(ctx.Events, s.onPowerUp)
	event.Subscribe(ctx.Events, s.onGameOver)
	return s
}

// GameOver returns the screen shown after a round.
func (s *GameScreen) GameOver() *GameOverScreen {
	return s.gameOver
}

func (s *GameScreen) Show() {
	s.active = true
	s.paused = true
	s.leaving = 0
	s.distance = 0
	s.life = [2]float32{component.DefaultLife, component.DefaultLife}
	s.shield = [2]float32{0, component.DefaultShield}
	s.ctx.Systems.SetGameplayEnabled(s.ctx.Scheduler, false)
	s.ctx.Log.Debug("game screen shown", zap.Float32("best", s.ctx.best()))
}

// Hide wipes the world and the power-up spawner state.
func (s *GameScreen) Hide() {
	s.active = false
	s.ctx.Log.Debug("game screen hidden", zap.Int("entities", s.ctx.Storage.EntityCount()))
	s.ctx.Storage.Clear()
	s.ctx.Systems.PowerUp.Reset()
	s.ctx.Systems.SetGameplayEnabled(s.ctx.Scheduler, false)
}

func (s *GameScreen) Paused() bool {
	return s.paused
}

func (s *GameScreen) Update(dt float64, touched bool) Screen {
	if s.paused && touched {
		s.paused = false
		s.ctx.Systems.SetGameplayEnabled(s.ctx.Scheduler, true)
		s.ctx.Events.Publish(event.PlayerSpawn{})
	}

	if s.paused {
		s.ctx.Scheduler.Once(0)
	} else {
		s.ctx.Scheduler.Once(dt)
	}
	s.updateHUD()

	if s.leaving > 0 {
		s.leaving -= dt
		if s.leaving <= 0 {
			return s.gameOver
		}
	}
	return nil
}

func (s *GameScreen) updateHUD() {
	lines := []string{
		fmt.Sprintf("Distance: %d", int(math.Round(float64(s.distance)))),
		fmt.Sprintf("Life: %.0f/%.0f", s.life[0], s.life[1]),
		fmt.Sprintf("Shield: %.0f/%.0f", s.shield[0], s.shield[1]),
		fmt.Sprintf("Best: %d", int(s.ctx.best())),
	}
	if s.paused {
		lines = append(lines, "", "Touch to begin")
	}
	s.ctx.hud(lines...)
}

func (s *GameScreen) onRestart(event.RestartGame) {
	if !s.active {
		return
	}
	prefab.DarkMatter(s.ctx.Storage, s.ctx.Config.World.Width, s.ctx.Config.Damage.AreaHeight)
	s.distance = 0
}

func (s *GameScreen) onSpawn(event.PlayerSpawn) {
	if !s.active {
		return
	}
	ship, _ := prefab.PlayerShip(s.ctx.Storage)
	s.ctx.Log.Debug("spawn player", zap.Stringer("entity", ship))
}

func (s *GameScreen) onMove(e event.PlayerMove) {
	s.distance = e.Distance
}

func (s *GameScreen) onDamaged(e event.ShipDamaged) {
	s.life = [2]float32{max(0, e.Life), e.MaxLife}
	if p := s.player(); p != nil {
		s.shield = [2]float32{p.Shield, p.MaxShield}
	}
}

func (s *GameScreen) onPowerUp(e event.PowerUpCollected) {
	if p := ecs.ReadComponent[component.Player](s.ctx.Storage, e.Player); p != nil {
		s.life = [2]float32{p.Life, p.MaxLife}
		s.shield = [2]float32{p.Shield, p.MaxShield}
	}
}

func (s *GameScreen) onGameOver(e event.GameOver) {
	if !s.active {
		return
	}
	distance := float32(math.Round(float64(e.Distance)))
	s.ctx.Log.Info("game over", zap.Float32("distance", distance))
	if s.ctx.Scores != nil {
		improved, err := s.ctx.Scores.Submit(distance, s.ctx.RunID)
		if err != nil {
			s.ctx.Log.Error("save high score", zap.Error(err))
		} else if improved {
			s.ctx.Log.Info("new high score", zap.Float32("distance", distance))
		}
	}
	s.gameOver.distance = distance
	s.leaving = GameOverDelay
}

func (s *GameScreen) player() *component.Player {
	for id := range s.ctx.Systems.Damage.Players.Family().Iter() {
		return ecs.ReadComponent[component.Player](s.ctx.Storage, id)
	}
	return nil
}

// GameOverScreen shows the result of the last round until the next touch.
type GameOverScreen struct {
	ctx      *Context
	game     *GameScreen
	distance float32
}

func (s *GameOverScreen) Distance() float32 {
	return s.distance
}

func (s *GameOverScreen) Show() {
	s.ctx.hud(
		"GAME OVER",
		fmt.Sprintf("Distance: %d", int(s.distance)),
		fmt.Sprintf("Best: %d", int(s.ctx.best())),
		"",
		"Touch to restart",
	)
}

func (s *GameOverScreen) Hide() {}

func (s *GameOverScreen) Update(dt float64, touched bool) Screen {
	s.ctx.Scheduler.Once(dt)
	if touched {
		s.ctx.Events.Publish(event.RestartGame{})
		return s.game
	}
	return nil
}
