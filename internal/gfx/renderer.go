package gfx

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/gfx/viewport"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
)

var (
	spaceColor   = color.RGBA{0x06, 0x04, 0x12, 0xff}
	outlineColor = [3]float32{0.25, 1, 1}
)

type star struct {
	pos        vmath.Vec2
	size       float32
	brightness uint8
	depth      float32
}

// sprite is a copy of a scene sprite taken at Render time. The scene points into component
// pools that the systems recycle before Draw runs.
type sprite struct {
	entity   ecs.EntityId
	pos      vmath.Vec2
	size     vmath.Vec2
	rotation float32
	region   *Region
	alpha    float32

	player  bool
	outline float32
	tint    float32
}

// Renderer draws the last scene it was handed onto an ebiten screen.
type Renderer struct {
	viewport   *viewport.Viewport
	stars      []star
	background vmath.Vec2
	sprites    []sprite
	overlays   map[ecs.EntityId]system.PlayerOverlay
	hud        []string
}

func NewRenderer(vp *viewport.Viewport, seed uint64) *Renderer {
	r := &Renderer{viewport: vp, overlays: make(map[ecs.EntityId]system.PlayerOverlay)}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for range 120 {
		r.stars = append(r.stars, star{
			pos:        vmath.V2(rng.Float32(), rng.Float32()),
			size:       1 + rng.Float32()*1.5,
			brightness: uint8(0x60 + rng.IntN(0x9f)),
			depth:      0.5 + rng.Float32(),
		})
	}
	return r
}

// Render implements system.Renderer.
func (r *Renderer) Render(scene *system.Scene) {
	r.background = scene.Background
	clear(r.overlays)
	for _, p := range scene.Players {
		r.overlays[p.Sprite.Entity] = p
	}

	r.sprites = r.sprites[:0]
	for _, s := range scene.Sprites {
		region, ok := s.Graphic.Region.(*Region)
		if !ok {
			continue
		}
		out := sprite{
			entity:   s.Entity,
			pos:      s.Transform.InterpolatedPosition.XY(),
			size:     s.Transform.Size,
			rotation: s.Transform.Rotation,
			region:   region,
			alpha:    s.Graphic.Alpha,
		}
		if p, ok := r.overlays[s.Entity]; ok {
			out.player = true
			out.outline = p.Outline
			out.tint = p.Tint
		}
		r.sprites = append(r.sprites, out)
	}
}

// SetHUD replaces the text lines drawn in the top left corner.
func (r *Renderer) SetHUD(lines ...string) {
	r.hud = append(r.hud[:0], lines...)
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	bounds := r.viewport.Bounds()
	vector.DrawFilledRect(screen, bounds.X, bounds.Y, bounds.W, bounds.H, spaceColor, false)
	r.drawStars(screen, bounds)

	for i := range r.sprites {
		r.drawSprite(screen, &r.sprites[i])
	}

	for i, line := range r.hud {
		ebitenutil.DebugPrintAt(screen, line, int(bounds.X)+8, int(bounds.Y)+8+i*16)
	}
}

// drawStars tiles the star field over the world rectangle, offset by the scroll position.
func (r *Renderer) drawStars(screen *ebiten.Image, bounds vmath.Rect) {
	for _, s := range r.stars {
		x := wrap(s.pos.X-r.background.X*s.depth, 1)
		y := wrap(s.pos.Y+r.background.Y*s.depth, 1)
		c := color.RGBA{s.brightness, s.brightness, s.brightness, 0xff}
		vector.DrawFilledRect(screen, bounds.X+x*bounds.W, bounds.Y+y*bounds.H, s.size, s.size, c, false)
	}
}

func (r *Renderer) drawSprite(screen *ebiten.Image, s *sprite) {
	img := s.region.Image
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scale := r.viewport.Scale()

	// Sprites are anchored at their bottom left corner in world space.
	topLeft := r.viewport.Project(vmath.V2(s.pos.X, s.pos.Y+s.size.Y))
	sizePx := s.size.Scale(scale)

	geo := func(grow float32) ebiten.GeoM {
		var m ebiten.GeoM
		m.Translate(-float64(w)/2, -float64(h)/2)
		m.Scale(float64(sizePx.X+grow)/float64(w), float64(sizePx.Y+grow)/float64(h))
		m.Rotate(-float64(s.rotation) * math.Pi / 180)
		m.Translate(float64(topLeft.X+sizePx.X/2), float64(topLeft.Y+sizePx.Y/2))
		return m
	}

	if s.player && s.outline > 0 && s.alpha > 0 {
		op := &ebiten.DrawImageOptions{GeoM: geo(scale * 0.15), Filter: ebiten.FilterLinear}
		op.ColorScale.Scale(outlineColor[0], outlineColor[1], outlineColor[2], 1)
		op.ColorScale.ScaleAlpha(s.outline * s.alpha)
		screen.DrawImage(img, op)
	}

	op := &ebiten.DrawImageOptions{GeoM: geo(0)}
	if s.player && s.tint > 0 {
		op.ColorScale.Scale(1, 1-s.tint, 1-s.tint, 1)
	}
	op.ColorScale.ScaleAlpha(s.alpha)
	screen.DrawImage(img, op)
}

func wrap(v, size float32) float32 {
	v = float32(math.Mod(float64(v), float64(size)))
	if v < 0 {
		v += size
	}
	return v
}
