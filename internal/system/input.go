package system

import (
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/vmath"
)

// TouchTolerance is the distance either side of the ship centre that keeps it facing forward.
const TouchTolerance = 0.2

type steerable struct {
	Player    *component.Player
	Transform *component.Transform
	Facing    *component.Facing
}

// InputSystem turns the ship towards the pointer.
type InputSystem struct {
	Players ecs.Query[steerable]

	pointer  Pointer
	viewport Unprojector
}

func NewInputSystem(pointer Pointer, viewport Unprojector) *InputSystem {
	return &InputSystem{pointer: pointer, viewport: viewport}
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	pointerX := s.viewport.Unproject(vmath.V2(s.pointer.PointerX(), 0)).X

	for p := range s.Players.Values() {
		p.Facing.Previous = p.Facing.Direction

		diff := pointerX - p.Transform.Position.X - p.Transform.Size.X*0.5
		switch {
		case diff < -TouchTolerance:
			p.Facing.Direction = component.FacingLeft
		case diff > TouchTolerance:
			p.Facing.Direction = component.FacingRight
		default:
			p.Facing.Direction = component.FacingDefault
		}
	}
}
