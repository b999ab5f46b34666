// Package gfx holds the ebiten side of the game: the sprite atlas, the renderer and
// the pointer and keyboard input.
package gfx

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/darkmatter/internal/component"
)

// PixelsPerUnit is the atlas resolution.
const PixelsPerUnit = 16

// Region is a named atlas image.
type Region struct {
	name  string
	Image *ebiten.Image
}

func (r *Region) Name() string {
	return r.name
}

// Atlas maps keys to ordered regions.
type Atlas struct {
	regions map[string][]component.Region
}

func NewAtlas() *Atlas {
	return &Atlas{regions: make(map[string][]component.Region)}
}

// Add appends frames to key. Frames are named key_0, key_1 and so on.
func (a *Atlas) Add(key string, frames ...*ebiten.Image) {
	for _, img := range frames {
		name := fmt.Sprintf("%s_%d", key, len(a.regions[key]))
		a.regions[key] = append(a.regions[key], &Region{name: name, Image: img})
	}
}

func (a *Atlas) FindRegions(key string) []component.Region {
	return a.regions[key]
}

var (
	hull    = color.RGBA{0xc8, 0xd0, 0xe0, 0xff}
	cockpit = color.RGBA{0x40, 0x90, 0xff, 0xff}
	flame   = color.RGBA{0xff, 0x90, 0x20, 0xff}
	core    = color.RGBA{0xff, 0xf0, 0x80, 0xff}
	matter  = color.RGBA{0x50, 0x10, 0x70, 0xff}
	glow    = color.RGBA{0xa0, 0x40, 0xd0, 0xff}
)

// NewProceduralAtlas paints every region the game asks for.
func NewProceduralAtlas() *Atlas {
	a := NewAtlas()
	a.Add("error", solid(PixelsPerUnit, PixelsPerUnit, color.RGBA{0xff, 0x00, 0xff, 0xff}))
	a.Add("ship_base", ship(0))
	a.Add("ship_left", ship(-3))
	a.Add("ship_right", ship(3))

	for i := range 2 {
		a.Add("fire", fire(float32(4+i*2)))
	}
	for i := range 3 {
		a.Add("dark_matter", darkMatter(i))
	}
	orbs := map[string]color.RGBA{
		"orb_blue":   {0x40, 0x80, 0xff, 0xff},
		"orb_yellow": {0xff, 0xd0, 0x20, 0xff},
		"life":       {0xff, 0x40, 0x50, 0xff},
		"shield":     {0x40, 0xff, 0xe0, 0xff},
	}
	for key, c := range orbs {
		for i := range 4 {
			a.Add(key, orb(c, float32(i)))
		}
	}
	for i := range 6 {
		a.Add("explosion", explosion(float32(i)/5))
	}
	return a
}

func solid(w, h int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

// ship draws the hull with its nose shifted by lean pixels.
func ship(lean float32) *ebiten.Image {
	img := ebiten.NewImage(PixelsPerUnit, PixelsPerUnit)
	var path vector.Path
	path.MoveTo(8+lean, 1)
	path.LineTo(15, 14)
	path.LineTo(8, 11)
	path.LineTo(1, 14)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].ColorR = float32(hull.R) / 0xff
		vs[i].ColorG = float32(hull.G) / 0xff
		vs[i].ColorB = float32(hull.B) / 0xff
		vs[i].ColorA = 1
		vs[i].SrcX = 1
		vs[i].SrcY = 1
	}
	img.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	vector.DrawFilledCircle(img, 8+lean/2, 7, 2, cockpit, true)
	return img
}

func fire(length float32) *ebiten.Image {
	img := ebiten.NewImage(PixelsPerUnit, PixelsPerUnit)
	vector.DrawFilledRect(img, 5, 0, 6, length, flame, false)
	vector.DrawFilledRect(img, 7, 0, 2, length*0.6, core, false)
	return img
}

func darkMatter(frame int) *ebiten.Image {
	w, h := 9*PixelsPerUnit, PixelsPerUnit*3/2
	img := solid(w, h, matter)
	for x := 0; x < w; x += 4 {
		wave := 2 + 2*math.Sin(float64(x)/8+float64(frame)*2*math.Pi/3)
		vector.DrawFilledRect(img, float32(x), 0, 4, float32(wave), glow, false)
	}
	return img
}

func orb(c color.RGBA, phase float32) *ebiten.Image {
	img := ebiten.NewImage(PixelsPerUnit, PixelsPerUnit)
	r := 5 + float32(math.Sin(float64(phase)*math.Pi/2))
	vector.DrawFilledCircle(img, 8, 8, r, c, true)
	vector.StrokeCircle(img, 8, 8, r+1.5, 1, color.RGBA{0xff, 0xff, 0xff, 0x80}, true)
	return img
}

// explosion draws a ring at progress t in [0, 1].
func explosion(t float32) *ebiten.Image {
	img := ebiten.NewImage(PixelsPerUnit, PixelsPerUnit)
	alpha := uint8(0xff * (1 - t*0.8))
	vector.DrawFilledCircle(img, 8, 8, 2+5*t, color.RGBA{0xff, 0xa0, 0x30, alpha}, true)
	vector.StrokeCircle(img, 8, 8, 3+5*t, 1.5, color.RGBA{0xff, 0xff, 0xa0, alpha}, true)
	return img
}

var white *ebiten.Image

func whitePixel() *ebiten.Image {
	if white == nil {
		white = solid(3, 3, color.White)
	}
	return white
}
