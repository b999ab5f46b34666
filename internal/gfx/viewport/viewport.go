// Package viewport maps between world units and window pixels. The world is y up with its
// origin bottom left; the window is y down. The world is fitted to the window keeping its
// aspect ratio and centred, leaving bars on the long side.
package viewport

import (
	"github.com/plus3/darkmatter/internal/vmath"
)

// Camera is the world point at the centre of the viewport.
type Camera struct {
	pos vmath.Vec2
}

func NewCamera(x, y float32) *Camera {
	return &Camera{pos: vmath.V2(x, y)}
}

func (c *Camera) Position() vmath.Vec2 {
	return c.pos
}

func (c *Camera) SetPosition(p vmath.Vec2) {
	c.pos = p
}

type Viewport struct {
	worldW, worldH float32
	camera         *Camera

	screenW, screenH float32
	scale            float32
	offset           vmath.Vec2
}

// New creates a viewport over a worldW x worldH world. A nil camera is centred on the world.
func New(worldW, worldH float32, camera *Camera) *Viewport {
	if camera == nil {
		camera = NewCamera(worldW/2, worldH/2)
	}
	return &Viewport{worldW: worldW, worldH: worldH, camera: camera}
}

// Update fits the world into a screen of the given size.
func (v *Viewport) Update(screenW, screenH int) {
	v.screenW = float32(screenW)
	v.screenH = float32(screenH)
	v.scale = min(v.screenW/v.worldW, v.screenH/v.worldH)
	v.offset = vmath.V2(
		(v.screenW-v.worldW*v.scale)/2,
		(v.screenH-v.worldH*v.scale)/2,
	)
}

func (v *Viewport) Camera() *Camera {
	return v.camera
}

// Scale returns pixels per world unit.
func (v *Viewport) Scale() float32 {
	return v.scale
}

// ScreenSize returns the size given to the last Update.
func (v *Viewport) ScreenSize() (w, h float32) {
	return v.screenW, v.screenH
}

// Bounds returns the pixel rectangle the world occupies, top left origin.
func (v *Viewport) Bounds() vmath.Rect {
	return vmath.RectAt(v.offset, vmath.V2(v.worldW*v.scale, v.worldH*v.scale))
}

// Project maps a world point to the screen.
func (v *Viewport) Project(world vmath.Vec2) vmath.Vec2 {
	origin := v.origin()
	return vmath.V2(
		v.offset.X+(world.X-origin.X)*v.scale,
		v.offset.Y+(v.worldH-(world.Y-origin.Y))*v.scale,
	)
}

// Unproject maps a screen point to the world.
func (v *Viewport) Unproject(screen vmath.Vec2) vmath.Vec2 {
	if v.scale == 0 {
		return vmath.Vec2{}
	}
	origin := v.origin()
	return vmath.V2(
		(screen.X-v.offset.X)/v.scale+origin.X,
		v.worldH-(screen.Y-v.offset.Y)/v.scale+origin.Y,
	)
}

// origin is the world point drawn at the bottom left of the world rectangle.
func (v *Viewport) origin() vmath.Vec2 {
	p := v.camera.Position()
	return vmath.V2(p.X-v.worldW/2, p.Y-v.worldH/2)
}
