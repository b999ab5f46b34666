package system

import (
	"slices"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/vmath"
)

const (
	ScrollSpeedHorizontal = 0.03
	ScrollSpeedVertical   = -0.25
)

// Sprite is one drawable entity handed to the Renderer.
type Sprite struct {
	Entity    ecs.EntityId
	Transform *component.Transform
	Graphic   *component.Graphic
}

// PlayerOverlay carries the shield outline and damage tint strengths of a player sprite.
type PlayerOverlay struct {
	Sprite  Sprite
	Outline float32 // shield / maxShield in [0, 1]
	Tint    float32 // 1 - life / maxLife in [0, 0.75]
}

// Scene is everything drawn in one frame. Sprites are sorted back to front.
type Scene struct {
	Background vmath.Vec2 // background scroll offset
	Sprites    []Sprite
	Players    []PlayerOverlay
}

// Renderer draws a scene. The slices are reused by the next frame.
type Renderer interface {
	Render(scene *Scene)
}

type drawable struct {
	ecs.EntityId
	Transform *component.Transform
	Graphic   *component.Graphic
	Player    *component.Player `ecs:"optional"`
	Remove    *component.Remove `ecs:"optional"`
}

// RenderSystem sorts drawable entities by z then y and passes them to the renderer.
type RenderSystem struct {
	Entities ecs.Query[drawable]

	renderer    Renderer
	scene       Scene
	scrollSpeed vmath.Vec2
}

// NewRenderSystem creates the system. Collecting speed power-ups on events speeds up the
// background scroll. renderer and events may be nil.
func NewRenderSystem(renderer Renderer, events *event.Bus) *RenderSystem {
	s := &RenderSystem{
		renderer:    renderer,
		scrollSpeed: vmath.V2(ScrollSpeedHorizontal, ScrollSpeedVertical),
	}
	if events != nil {
		event.Subscribe(events, s.onPowerUpCollected)
	}
	return s
}

func (s *RenderSystem) onPowerUpCollected(e event.PowerUpCollected) {
	switch e.Type {
	case component.PowerUpSpeed1:
		s.scrollSpeed.Y += ScrollSpeedVertical
	case component.PowerUpSpeed2:
		s.scrollSpeed.Y += ScrollSpeedVertical * 2
	}
}

// ScrollSpeed returns the current background scroll speed.
func (s *RenderSystem) ScrollSpeed() vmath.Vec2 {
	return s.scrollSpeed
}

// Scene returns the most recently built scene.
func (s *RenderSystem) Scene() *Scene {
	return &s.scene
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)

	s.scrollSpeed.Y = min(ScrollSpeedVertical, s.scrollSpeed.Y+dt/10)
	s.scene.Background = s.scene.Background.Add(s.scrollSpeed.Scale(dt))

	s.scene.Sprites = s.scene.Sprites[:0]
	s.scene.Players = s.scene.Players[:0]
	for e := range s.Entities.Values() {
		if e.Graphic.Region == nil {
			continue
		}
		sprite := Sprite{Entity: e.EntityId, Transform: e.Transform, Graphic: e.Graphic}
		s.scene.Sprites = append(s.scene.Sprites, sprite)

		if e.Player != nil && e.Remove == nil {
			s.scene.Players = append(s.scene.Players, PlayerOverlay{
				Sprite:  sprite,
				Outline: ratio(e.Player.Shield, e.Player.MaxShield),
				Tint:    vmath.Clamp(1-ratio(e.Player.Life, e.Player.MaxLife), 0, 0.75),
			})
		}
	}
	slices.SortStableFunc(s.scene.Sprites, func(a, b Sprite) int {
		switch {
		case a.Transform.Less(b.Transform):
			return -1
		case b.Transform.Less(a.Transform):
			return 1
		default:
			return 0
		}
	})

	if s.renderer != nil {
		s.renderer.Render(&s.scene)
	}
}

func ratio(v, maxV float32) float32 {
	if maxV <= 0 {
		return 0
	}
	return vmath.Clamp(v/maxV, 0, 1)
}
