package game

import (
	"go.uber.org/zap"
)

// Game drives the current screen.
type Game struct {
	ctx     *Context
	screen  Screen
	first   *GameScreen
	maxStep float64
	frames  uint64
}

// New creates the game on the game screen.
func New(ctx *Context) *Game {
	first := NewGameScreen(ctx)
	g := &Game{ctx: ctx, first: first, maxStep: float64(ctx.Config.Move.MaxFrameDelta)}
	g.switchTo(first)
	return g
}

func (g *Game) Context() *Context {
	return g.ctx
}

func (g *Game) Screen() Screen {
	return g.screen
}

// GameScreen returns the round screen.
func (g *Game) GameScreen() *GameScreen {
	return g.first
}

// Frame advances one tick: the screen updates, events are delivered and the frame's
// sounds start. dt is capped so a stall does not tunnel the ship through the hazard.
func (g *Game) Frame(dt float64, touched bool) {
	dt = min(dt, g.maxStep)
	if next := g.screen.Update(dt, touched); next != nil {
		g.switchTo(next)
	}
	g.ctx.Events.Dispatch()

	if sounds := g.ctx.Frontend.Sounds; sounds != nil {
		sounds.Flush()
	}
	g.frames++
}

// Frames returns the number of frames run.
func (g *Game) Frames() uint64 {
	return g.frames
}

func (g *Game) switchTo(next Screen) {
	if g.screen != nil {
		g.screen.Hide()
	}
	g.ctx.Log.Debug("switch screen", zap.String("screen", screenName(next)))
	g.screen = next
	next.Show()
}

func screenName(s Screen) string {
	switch s.(type) {
	case *GameScreen:
		return "game"
	case *GameOverScreen:
		return "game_over"
	default:
		return "unknown"
	}
}
