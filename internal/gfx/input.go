package gfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/darkmatter/internal/system"
)

var debugKeys = map[system.DebugKey]ebiten.Key{
	system.DebugToggleMove: ebiten.Key1,
	system.DebugShield:     ebiten.Key2,
	system.DebugDown:       ebiten.Key3,
	system.DebugUp:         ebiten.Key4,
	system.DebugKill:       ebiten.Key5,
}

// Input polls the mouse, touch screen and keyboard once per frame. The pointer is the
// first active touch, else the cursor.
type Input struct {
	x       float32
	touched bool
	touches []ebiten.TouchID
}

func NewInput() *Input {
	return &Input{}
}

// Update reads the device state. Call it at the start of every ebiten Update.
func (i *Input) Update() {
	i.touches = ebiten.AppendTouchIDs(i.touches[:0])
	if len(i.touches) > 0 {
		x, _ := ebiten.TouchPosition(i.touches[0])
		i.x = float32(x)
	} else {
		x, _ := ebiten.CursorPosition()
		i.x = float32(x)
	}

	i.touched = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// PointerX implements system.Pointer.
func (i *Input) PointerX() float32 {
	return i.x
}

// JustTouched reports a click, tap or space press this frame.
func (i *Input) JustTouched() bool {
	return i.touched
}

// Pressed implements system.Keys.
func (i *Input) Pressed(k system.DebugKey) bool {
	key, ok := debugKeys[k]
	return ok && ebiten.IsKeyPressed(key)
}

// Quit reports whether the player asked to leave.
func (i *Input) Quit() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// ToggleOverlay reports a press of the debug overlay key.
func (i *Input) ToggleOverlay() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF1)
}
