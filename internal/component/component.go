// Package component defines the game's component types. Pooled storage zeroes a slot
// and then calls Reset, so Reset sets every non zero default.
package component

import (
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/vmath"
)

// Transform places an entity in the world. Z orders drawing and is never interpolated.
type Transform struct {
	Position             vmath.Vec3
	PrevPosition         vmath.Vec3
	InterpolatedPosition vmath.Vec3
	Size                 vmath.Vec2
	Rotation             float32
}

func (t *Transform) Reset() {
	t.Size = vmath.V2(1, 1)
}

// SetInitialPosition moves the entity without interpolating from its old position.
func (t *Transform) SetInitialPosition(x, y, z float32) {
	t.Position = vmath.V3(x, y, z)
	t.PrevPosition = t.Position
	t.InterpolatedPosition = t.Position
}

// Bounds returns the rectangle covered by the entity at its simulated position.
func (t *Transform) Bounds() vmath.Rect {
	return vmath.RectAt(t.Position.XY(), t.Size)
}

// Less orders transforms for drawing: z ascending, then y ascending.
func (t *Transform) Less(o *Transform) bool {
	if t.Position.Z != o.Position.Z {
		return t.Position.Z < o.Position.Z
	}
	return t.Position.Y < o.Position.Y
}

type Move struct {
	Speed vmath.Vec2
}

type FacingDirection uint8

const (
	FacingDefault FacingDirection = iota
	FacingLeft
	FacingRight
)

func (d FacingDirection) String() string {
	switch d {
	case FacingLeft:
		return "LEFT"
	case FacingRight:
		return "RIGHT"
	default:
		return "DEFAULT"
	}
}

// Facing holds the direction chosen this frame and the one chosen the frame before.
type Facing struct {
	Direction FacingDirection
	Previous  FacingDirection
}

// Changed reports whether the direction differs from the previous frame's.
func (f *Facing) Changed() bool {
	return f.Direction != f.Previous
}

const (
	DefaultLife   = 100
	DefaultShield = 100
)

type Player struct {
	Life      float32
	MaxLife   float32
	Shield    float32
	MaxShield float32
	Distance  float32
}

func (p *Player) Reset() {
	p.Life = DefaultLife
	p.MaxLife = DefaultLife
	p.Shield = 0
	p.MaxShield = DefaultShield
	p.Distance = 0
}

func (p *Player) IsDead() bool {
	return p.Life <= 0
}

// Attach derives an entity's drawn position from its master's.
type Attach struct {
	Master ecs.EntityId
	Offset vmath.Vec2
}

// Region is an opaque drawable handle produced by an atlas.
type Region interface {
	Name() string
}

type Graphic struct {
	Region Region
	Alpha  float32
}

func (g *Graphic) Reset() {
	g.Alpha = 1
}

// Remove destroys its entity once Delay has elapsed.
type Remove struct {
	Delay float32
}

// Register adds every game component to r.
func Register(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](r)
	ecs.RegisterComponent[Move](r)
	ecs.RegisterComponent[Facing](r)
	ecs.RegisterComponent[Player](r)
	ecs.RegisterComponent[PowerUp](r)
	ecs.RegisterComponent[Attach](r)
	ecs.RegisterComponent[Animation](r)
	ecs.RegisterComponent[Graphic](r)
	ecs.RegisterComponent[Remove](r)
}

// NewRegistry returns a registry holding every game component.
func NewRegistry() *ecs.ComponentRegistry {
	r := ecs.NewComponentRegistry()
	Register(r)
	return r
}
