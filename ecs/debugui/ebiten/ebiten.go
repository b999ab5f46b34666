// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/darkmatter/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini persistence is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// OverlayRunner drives a debugui.Overlay from an ebiten.Game's Update, Draw and Layout.
type OverlayRunner struct {
	Backend *ImguiBackend
	Overlay *debugui.Overlay
}

// Update renders one overlay frame.
func (r *OverlayRunner) Update(dt float64) {
	r.Backend.BeginFrame()
	r.Overlay.Frame(dt)
	r.Backend.EndFrame()
}

// Draw draws the last overlay frame on top of screen.
func (r *OverlayRunner) Draw(screen *ebiten.Image) {
	r.Backend.Draw(screen)
}

// Layout forwards the outside size to the backend.
func (r *OverlayRunner) Layout(outsideWidth, outsideHeight int) {
	r.Backend.Layout(outsideWidth, outsideHeight)
}

// WantsInput reports whether ImGui consumed pointer or keyboard input last frame.
func (r *OverlayRunner) WantsInput() bool {
	state := r.Overlay.InputState()
	return state.WantCaptureMouse || state.WantCaptureKeyboard
}
