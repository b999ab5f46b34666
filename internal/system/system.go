// Package system holds the game's behavior. Systems run once per frame in the order
// Register adds them and communicate through components and the event bus.
package system

import (
	"math/rand/v2"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/vmath"
	"go.uber.org/zap"
)

// Pointer reports the pointer position in screen coordinates.
type Pointer interface {
	PointerX() float32
}

// Unprojector maps screen coordinates to world coordinates.
type Unprojector interface {
	Unproject(screen vmath.Vec2) vmath.Vec2
}

// Atlas resolves animation and sprite keys to ordered regions. It returns nil when the key is unknown.
type Atlas interface {
	FindRegions(key string) []component.Region
}

// Deps holds the collaborators the systems are built from. Optional collaborators
// may be nil; the systems that need them are then left out.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	Events *event.Bus
	Rand   *rand.Rand

	Pointer  Pointer
	Viewport Unprojector
	Atlas    Atlas
	Renderer Renderer
	Camera   Camera
	Keys     Keys
	Status   func(string)
}

// Set is every game system in execution order.
type Set struct {
	Input           *InputSystem
	PlayerAnimation *PlayerAnimationSystem
	Move            *MoveSystem
	PowerUp         *PowerUpSystem
	Damage          *DamageSystem
	CameraShake     *CameraShakeSystem
	Debug           *DebugSystem
	Attach          *AttachSystem
	Animation       *AnimationSystem
	Render          *RenderSystem
	Remove          *RemoveSystem
}

// NewSet builds the systems. Input needs Pointer and Viewport, PlayerAnimation and Animation
// need Atlas, CameraShake needs Camera and Debug needs Keys with Config.Debug.Enabled.
func NewSet(deps Deps) *Set {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Rand == nil {
		deps.Rand = NewRand(deps.Config.PowerUp.Seed)
	}
	if deps.Events == nil {
		deps.Events = event.NewBus()
	}
	cfg := deps.Config

	s := &Set{
		Move:    NewMoveSystem(cfg.World, cfg.Move, deps.Events),
		PowerUp: NewPowerUpSystem(cfg.World, cfg.PowerUp, deps.Events, deps.Rand, deps.Log.Named("powerup")),
		Damage:  NewDamageSystem(cfg.Damage, deps.Events),
		Attach:  &AttachSystem{},
		Render:  NewRenderSystem(deps.Renderer, deps.Events),
		Remove:  &RemoveSystem{},
	}
	if deps.Pointer != nil && deps.Viewport != nil {
		s.Input = NewInputSystem(deps.Pointer, deps.Viewport)
	}
	if deps.Atlas != nil {
		s.PlayerAnimation = NewPlayerAnimationSystem(deps.Atlas)
		s.Animation = NewAnimationSystem(deps.Atlas, deps.Log.Named("animation"))
	}
	if deps.Camera != nil && cfg.Damage.CameraShake {
		s.CameraShake = NewCameraShakeSystem(deps.Camera, cfg.Damage, deps.Events, deps.Rand)
	}
	if deps.Keys != nil && cfg.Debug.Enabled {
		s.Debug = NewDebugSystem(deps.Keys, cfg.World, cfg.Debug, deps.Status)
	}
	return s
}

// Systems returns the non nil systems in execution order.
func (s *Set) Systems() []ecs.System {
	var out []ecs.System
	add := func(sys ecs.System, ok bool) {
		if ok {
			out = append(out, sys)
		}
	}
	add(s.Input, s.Input != nil)
	add(s.PlayerAnimation, s.PlayerAnimation != nil)
	add(s.Move, s.Move != nil)
	add(s.PowerUp, s.PowerUp != nil)
	add(s.Damage, s.Damage != nil)
	add(s.CameraShake, s.CameraShake != nil)
	add(s.Debug, s.Debug != nil)
	add(s.Attach, s.Attach != nil)
	add(s.Animation, s.Animation != nil)
	add(s.Render, s.Render != nil)
	add(s.Remove, s.Remove != nil)
	return out
}

// Register adds the systems to scheduler in execution order.
func (s *Set) Register(scheduler *ecs.Scheduler) {
	scheduler.Register(s.Systems()...)
	if s.Debug != nil && s.Move != nil {
		s.Debug.Bind(scheduler, s.Move)
	}
}

// SetGameplayEnabled pauses or resumes everything except rendering.
func (s *Set) SetGameplayEnabled(scheduler *ecs.Scheduler, enabled bool) {
	for _, sys := range s.Systems() {
		if sys == ecs.System(s.Render) {
			continue
		}
		scheduler.SetEnabled(sys, enabled)
	}
}

// NewRand returns a PCG source seeded with seed, or a random one when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
