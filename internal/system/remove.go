package system

import (
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
)

type removable struct {
	ecs.EntityId
	Remove *component.Remove
}

// RemoveSystem deletes entities whose Remove delay has run out.
type RemoveSystem struct {
	Entities ecs.Query[removable]
}

func (s *RemoveSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for e := range s.Entities.Values() {
		e.Remove.Delay -= dt
		if e.Remove.Delay <= 0 {
			frame.Commands.Delete(e.EntityId)
		}
	}
}
