// Package game wires the systems into playable screens. It is independent of the frontend:
// the ebiten and terminal builds hand it their collaborators and call Frame once per tick.
package game

import (
	"github.com/google/uuid"
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/audio"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/highscore"
	"github.com/plus3/darkmatter/internal/system"
	"go.uber.org/zap"
)

// Sounds plays effects requested during a frame when flushed.
type Sounds interface {
	audio.Player
	Flush() int
}

// HUD shows text lines over the playfield.
type HUD interface {
	SetHUD(lines ...string)
}

// Frontend holds the platform collaborators. Any of them may be nil.
type Frontend struct {
	Pointer  system.Pointer
	Viewport system.Unprojector
	Atlas    system.Atlas
	Renderer system.Renderer
	Camera   system.Camera
	Keys     system.Keys
	HUD      HUD
	Sounds   Sounds
}

// Context is the state shared by the screens.
type Context struct {
	Config    *config.Config
	Log       *zap.Logger
	RunID     uuid.UUID
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Systems   *system.Set
	Events    *event.Bus
	Scores    *highscore.Store
	Frontend  Frontend

	status string
}

// NewContext builds the world and registers every system.
func NewContext(cfg *config.Config, log *zap.Logger, run uuid.UUID, scores *highscore.Store, fe Frontend) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	ctx := &Context{
		Config:   cfg,
		Log:      log,
		RunID:    run,
		Storage:  ecs.NewStorage(component.NewRegistry()),
		Events:   event.NewBus(),
		Scores:   scores,
		Frontend: fe,
	}
	ctx.Scheduler = ecs.NewScheduler(ctx.Storage)
	ctx.Systems = system.NewSet(system.Deps{
		Config:   cfg,
		Log:      log,
		Events:   ctx.Events,
		Rand:     system.NewRand(cfg.PowerUp.Seed),
		Pointer:  fe.Pointer,
		Viewport: fe.Viewport,
		Atlas:    fe.Atlas,
		Renderer: fe.Renderer,
		Camera:   fe.Camera,
		Keys:     fe.Keys,
		Status:   func(s string) { ctx.status = s },
	})
	ctx.Systems.Register(ctx.Scheduler)

	if fe.Sounds != nil {
		audio.Bind(ctx.Events, fe.Sounds)
	}
	return ctx
}

func (c *Context) best() float32 {
	if c.Scores == nil {
		return 0
	}
	return c.Scores.Best()
}

func (c *Context) hud(lines ...string) {
	if c.Frontend.HUD == nil {
		return
	}
	if c.status != "" {
		lines = append(lines, c.status)
	}
	c.Frontend.HUD.SetHUD(lines...)
}
