package tty

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
)

var (
	emptyStyle  = tcell.StyleDefault.Background(tcell.ColorBlack)
	starStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	shieldStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorTeal)
)

// Cell is one character of a rendered frame.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Renderer rasterises scenes into a playfield grid and copies it to a tcell screen.
type Renderer struct {
	viewport *Viewport
	grid     [][]Cell
	hud      []string
}

func NewRenderer(vp *Viewport) *Renderer {
	r := &Renderer{viewport: vp}
	r.grid = make([][]Cell, vp.Rows())
	for i := range r.grid {
		r.grid[i] = make([]Cell, vp.Columns())
	}
	return r
}

// Render implements system.Renderer. Sprites are painted back to front so later ones win.
func (r *Renderer) Render(scene *system.Scene) {
	r.clear(scene.Background)

	players := make(map[ecs.EntityId]system.PlayerOverlay, len(scene.Players))
	for _, p := range scene.Players {
		players[p.Sprite.Entity] = p
	}

	for _, s := range scene.Sprites {
		g, ok := s.Graphic.Region.(*Glyph)
		if !ok || s.Graphic.Alpha <= 0 {
			continue
		}
		st := g.Style
		if p, ok := players[s.Entity]; ok {
			st = playerStyle(st, p)
		}
		r.fill(s.Transform.InterpolatedPosition.XY(), s.Transform.Size, Cell{Rune: g.Rune, Style: st})
	}
}

func playerStyle(st tcell.Style, p system.PlayerOverlay) tcell.Style {
	if p.Tint > 0 {
		// Fade from the base colour to red as the ship takes damage.
		fg, _, _ := st.Decompose()
		r, g, b := fg.RGB()
		keep := 1 - p.Tint
		st = st.Foreground(tcell.NewRGBColor(
			int32(float32(r)*keep+255*p.Tint),
			int32(float32(g)*keep),
			int32(float32(b)*keep),
		))
	}
	if p.Outline > 0.5 {
		_, bg, _ := shieldStyle.Decompose()
		st = st.Background(bg)
	}
	return st
}

func (r *Renderer) clear(scroll vmath.Vec2) {
	rows := len(r.grid)
	for y, row := range r.grid {
		for x := range row {
			row[x] = Cell{Rune: ' ', Style: emptyStyle}
			// Sparse star field that scrolls with the background offset.
			sy := (y - int(math.Floor(float64(scroll.Y*float32(rows))))) % rows
			if sy < 0 {
				sy += rows
			}
			if (x*7+sy*13)%29 == 0 {
				row[x] = Cell{Rune: '.', Style: starStyle}
			}
		}
	}
}

// fill paints every cell covered by the world rectangle at pos with size.
func (r *Renderer) fill(pos, size vmath.Vec2, c Cell) {
	c0, rowBottom := r.viewport.cell(pos)
	c1, rowTop := r.viewport.cell(pos.Add(size))
	c1 = max(c1, c0+1)
	rowBottom = max(rowBottom, rowTop+1)

	for row := rowTop; row < rowBottom; row++ {
		if row < 0 || row >= len(r.grid) {
			continue
		}
		for col := c0; col < c1; col++ {
			if col < 0 || col >= len(r.grid[row]) {
				continue
			}
			r.grid[row][col] = c
		}
	}
}

// Cell returns the rendered playfield cell at col, row.
func (r *Renderer) Cell(col, row int) Cell {
	return r.grid[row][col]
}

func (r *Renderer) SetHUD(lines ...string) {
	r.hud = append(r.hud[:0], lines...)
}

func (r *Renderer) Draw(screen tcell.Screen) {
	screen.Clear()
	left, top := r.viewport.Origin()
	for y, row := range r.grid {
		for x, c := range row {
			screen.SetContent(left+x, top+y, c.Rune, nil, c.Style)
		}
	}

	hudCol := left + r.viewport.Columns() + 2
	for i, line := range r.hud {
		col := hudCol
		for _, ch := range line {
			screen.SetContent(col, top+i, ch, nil, hudStyle)
			col++
		}
	}
	screen.Show()
}
