// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/darkmatter/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// Overlay is a set of debug windows over a target storage. The windows live in their own
// storage so clearing the target does not remove them.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]

	target          *ecs.Storage
	targetScheduler *ecs.Scheduler
	frames          *FrameHistory
	browser         *EntityBrowser
}

// NewOverlay creates the default windows (performance, entities, families) for target.
// targetScheduler may be nil when there are no system stats to show.
func NewOverlay(target *ecs.Storage, targetScheduler *ecs.Scheduler) *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	storage := ecs.NewStorage(registry)

	o := &Overlay{
		storage:         storage,
		scheduler:       ecs.NewScheduler(storage),
		input:           ecs.NewSingleton[ImguiInputState](storage),
		target:          target,
		targetScheduler: targetScheduler,
		frames:          NewFrameHistory(120),
		browser:         NewEntityBrowser(100),
	}
	o.scheduler.Register(&ImguiSystem{})

	o.AddWindow(func() { renderPerformance(o.target, o.targetScheduler, o.frames) })
	o.AddWindow(func() { o.browser.Render(o.target) })
	o.AddWindow(func() { renderInspector(o.target, o.browser.Selected()) })
	o.AddWindow(func() { renderFamilies(o.target) })
	return o
}

// AddWindow adds a render function that runs every frame inside the ImGui frame.
func (o *Overlay) AddWindow(render func()) ecs.EntityId {
	return o.storage.Spawn(ImguiItem{Render: render})
}

// RemoveWindow removes a window added with AddWindow.
func (o *Overlay) RemoveWindow(id ecs.EntityId) {
	o.storage.Delete(id)
}

// Frame renders all windows. Call it between the backend's BeginFrame and EndFrame.
func (o *Overlay) Frame(dt float64) {
	o.frames.Push(float32(dt))
	o.scheduler.Once(dt)
}

// InputState reports whether ImGui wanted mouse or keyboard input during the last frame.
func (o *Overlay) InputState() ImguiInputState {
	return *o.input.Get()
}
