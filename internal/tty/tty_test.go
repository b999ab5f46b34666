package tty

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glyphScene(a *Atlas, key string, pos vmath.Vec3, size vmath.Vec2) *system.Scene {
	return &system.Scene{Sprites: []system.Sprite{{
		Entity:    1,
		Transform: &component.Transform{InterpolatedPosition: pos, Size: size},
		Graphic:   &component.Graphic{Region: a.FindRegions(key)[0], Alpha: 1},
	}}}
}

func TestRenderPlacesSprite(t *testing.T) {
	atlas := NewAtlas()
	vp := NewViewport(9, 16)
	r := NewRenderer(vp)

	r.Render(glyphScene(atlas, "ship_base", vmath.V3(4, 7.5, 1), vmath.V2(1, 1)))

	assert.Equal(t, 'A', r.Cell(8, 7).Rune)
	assert.Equal(t, 'A', r.Cell(9, 7).Rune)
	assert.NotEqual(t, 'A', r.Cell(10, 7).Rune)
	assert.NotEqual(t, 'A', r.Cell(8, 8).Rune)
}

func TestRenderClipsOutside(t *testing.T) {
	atlas := NewAtlas()
	r := NewRenderer(NewViewport(9, 16))
	assert.NotPanics(t, func() {
		r.Render(glyphScene(atlas, "orb_blue", vmath.V3(8.5, 16.5, 0), vmath.V2(1, 1)))
		r.Render(glyphScene(atlas, "dark_matter", vmath.V3(-1, -1, 0), vmath.V2(12, 3)))
	})
	assert.Equal(t, '~', r.Cell(0, 15).Rune)
}

func TestPlayerTint(t *testing.T) {
	base := style(tcell.ColorSilver)
	st := playerStyle(base, system.PlayerOverlay{Tint: 0.75})
	fg, _, _ := st.Decompose()
	r, g, _ := fg.RGB()
	assert.Greater(t, r, g)
}

func TestViewportUnproject(t *testing.T) {
	vp := NewViewport(9, 16)
	vp.Update(80, 24)

	left, top := vp.Origin()
	assert.Equal(t, 31, left)
	assert.Equal(t, 4, top)
	assert.Equal(t, vmath.V2(4.5, 16), vp.Unproject(vmath.V2(float32(left+9), float32(top))))
}

func TestInput(t *testing.T) {
	vp := NewViewport(9, 16)
	vp.Update(18, 16)
	in := NewInput(vp)
	now := time.Unix(100, 0)
	in.now = func() time.Time { return now }

	assert.Equal(t, float32(9.5), in.PointerX())
	in.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, float32(8.5), in.PointerX())

	for range 30 {
		in.Handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	}
	assert.Equal(t, float32(17.5), in.PointerX())

	in.Handle(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone))
	assert.True(t, in.Pressed(system.DebugShield))
	assert.False(t, in.Pressed(system.DebugKill))
	now = now.Add(KeyHold)
	assert.False(t, in.Pressed(system.DebugShield))

	assert.False(t, in.JustTouched())
	in.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.True(t, in.JustTouched())
	assert.False(t, in.JustTouched())

	in.Handle(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone))
	assert.Equal(t, float32(3.5), in.PointerX())
	assert.True(t, in.JustTouched())

	in.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.True(t, in.Quit())
}

func TestDrawToSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)

	vp := NewViewport(9, 16)
	vp.Update(screen.Size())
	r := NewRenderer(vp)
	r.Render(glyphScene(NewAtlas(), "shield", vmath.V3(0, 0, 0), vmath.V2(1, 1)))
	r.SetHUD("Distance: 0")
	assert.NotPanics(t, func() { r.Draw(screen) })
}
