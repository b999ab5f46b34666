package tty

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/darkmatter/internal/system"
)

// KeyHold is how long a key press counts as held. Terminals report presses and
// repeats but no releases.
const KeyHold = 150 * time.Millisecond

var debugRunes = map[rune]system.DebugKey{
	'1': system.DebugToggleMove,
	'2': system.DebugShield,
	'3': system.DebugDown,
	'4': system.DebugUp,
	'5': system.DebugKill,
}

// Input drives a virtual pointer from the mouse or the arrow keys.
type Input struct {
	viewport *Viewport
	now      func() time.Time

	col     float32
	touched bool
	quit    bool
	held    map[system.DebugKey]time.Time
}

func NewInput(vp *Viewport) *Input {
	left, _ := vp.Origin()
	return &Input{
		viewport: vp,
		now:      time.Now,
		col:      float32(left + vp.Columns()/2),
		held:     make(map[system.DebugKey]time.Time),
	}
}

// Handle applies a terminal event.
func (i *Input) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		i.key(ev)
	case *tcell.EventMouse:
		x, _ := ev.Position()
		i.col = float32(x)
		if ev.Buttons()&tcell.Button1 != 0 {
			i.touched = true
		}
	}
}

func (i *Input) key(ev *tcell.EventKey) {
	left, _ := i.viewport.Origin()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		i.quit = true
	case tcell.KeyLeft:
		i.col = max(float32(left), i.col-1)
	case tcell.KeyRight:
		i.col = min(float32(left+i.viewport.Columns()-1), i.col+1)
	case tcell.KeyEnter:
		i.touched = true
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case ' ':
			i.touched = true
		case 'q':
			i.quit = true
		default:
			if k, ok := debugRunes[r]; ok {
				i.held[k] = i.now()
			}
		}
	}
}

// PointerX implements system.Pointer in terminal columns.
func (i *Input) PointerX() float32 {
	return i.col + 0.5
}

// JustTouched reports a click, space or enter since the last call.
func (i *Input) JustTouched() bool {
	t := i.touched
	i.touched = false
	return t
}

func (i *Input) Quit() bool {
	return i.quit
}

// Pressed implements system.Keys.
func (i *Input) Pressed(k system.DebugKey) bool {
	at, ok := i.held[k]
	return ok && i.now().Sub(at) < KeyHold
}
