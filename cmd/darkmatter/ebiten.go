package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	debugebiten "github.com/plus3/darkmatter/ecs/debugui/ebiten"
	"github.com/plus3/darkmatter/internal/game"
	"github.com/plus3/darkmatter/internal/gfx"
	"github.com/plus3/darkmatter/internal/gfx/viewport"
)

// ebitenGame adapts game.Game to ebiten.Game.
type ebitenGame struct {
	*game.Game
	Input    *gfx.Input
	Renderer *gfx.Renderer
	Viewport *viewport.Viewport
	// Overlay is the optional debug UI, toggled with F1.
	Overlay *debugebiten.OverlayRunner

	showOverlay bool
	last        time.Time
}

func (e *ebitenGame) Update() error {
	e.Input.Update()
	if e.Input.Quit() {
		return ebiten.Termination
	}

	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !e.last.IsZero() {
		dt = now.Sub(e.last).Seconds()
	}
	e.last = now

	if e.Overlay != nil && e.Input.ToggleOverlay() {
		e.showOverlay = !e.showOverlay
	}
	touched := e.Input.JustTouched()
	if e.showOverlay {
		e.Overlay.Update(dt)
		if e.Overlay.WantsInput() {
			touched = false
		}
	}

	e.Frame(dt, touched)
	return nil
}

func (e *ebitenGame) Draw(screen *ebiten.Image) {
	e.Renderer.Draw(screen)
	if e.showOverlay {
		e.Overlay.Draw(screen)
	}
}

func (e *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.Viewport.Update(outsideWidth, outsideHeight)
	if e.Overlay != nil {
		e.Overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
