// Package tty renders the game into a terminal with tcell. Each world unit is two columns
// wide and one row high, which keeps the 9 x 16 playfield roughly square on most fonts.
package tty

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/vmath"
)

const (
	ColumnsPerUnit = 2
	RowsPerUnit    = 1
)

// Glyph is a terminal atlas region.
type Glyph struct {
	name  string
	Rune  rune
	Style tcell.Style
}

func (g *Glyph) Name() string {
	return g.name
}

// Atlas resolves animation keys to glyph frames.
type Atlas struct {
	regions map[string][]component.Region
}

func style(fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack)
}

func NewAtlas() *Atlas {
	a := &Atlas{regions: make(map[string][]component.Region)}
	a.add("error", style(tcell.ColorFuchsia), '?')
	a.add("ship_base", style(tcell.ColorSilver), 'A')
	a.add("ship_left", style(tcell.ColorSilver), '<')
	a.add("ship_right", style(tcell.ColorSilver), '>')
	a.add("fire", style(tcell.ColorOrange), '\'', '"')
	a.add("dark_matter", style(tcell.ColorPurple), '~', '≈', '~')
	a.add("orb_blue", style(tcell.ColorBlue), 'o', 'O')
	a.add("orb_yellow", style(tcell.ColorYellow), 'o', 'O')
	a.add("life", style(tcell.ColorRed), '+', '✚')
	a.add("shield", style(tcell.ColorAqua), '◇', '◆')
	a.add("explosion", style(tcell.ColorOrangeRed), '*', '✶', '✷', '·')
	return a
}

func (a *Atlas) add(key string, st tcell.Style, frames ...rune) {
	for _, r := range frames {
		a.regions[key] = append(a.regions[key], &Glyph{name: key, Rune: r, Style: st})
	}
}

func (a *Atlas) FindRegions(key string) []component.Region {
	return a.regions[key]
}

// Viewport places the world in the middle of the terminal.
type Viewport struct {
	worldW, worldH float32
	left, top      int
}

func NewViewport(worldW, worldH float32) *Viewport {
	return &Viewport{worldW: worldW, worldH: worldH}
}

// Update centres the playfield in a cols x rows terminal.
func (v *Viewport) Update(cols, rows int) {
	v.left = max(0, (cols-v.Columns())/2)
	v.top = max(0, (rows-v.Rows())/2)
}

func (v *Viewport) Columns() int {
	return int(v.worldW * ColumnsPerUnit)
}

func (v *Viewport) Rows() int {
	return int(v.worldH * RowsPerUnit)
}

// Origin returns the terminal cell of the top left playfield corner.
func (v *Viewport) Origin() (col, row int) {
	return v.left, v.top
}

// Unproject maps a terminal column and row to world coordinates.
func (v *Viewport) Unproject(screen vmath.Vec2) vmath.Vec2 {
	return vmath.V2(
		(screen.X-float32(v.left))/ColumnsPerUnit,
		v.worldH-(screen.Y-float32(v.top))/RowsPerUnit,
	)
}

// cell maps a world point to a playfield cell, relative to Origin.
func (v *Viewport) cell(p vmath.Vec2) (col, row int) {
	return int(math.Floor(float64(p.X * ColumnsPerUnit))), int(math.Floor(float64((v.worldH - p.Y) * RowsPerUnit)))
}
