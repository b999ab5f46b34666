package system

import (
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
)

type attached struct {
	ecs.EntityId
	Attach    *component.Attach
	Transform *component.Transform
	Graphic   *component.Graphic `ecs:"optional"`
	Remove    *component.Remove  `ecs:"exclude"`
}

type master struct {
	Transform *component.Transform
	Graphic   *component.Graphic `ecs:"optional"`
}

// AttachSystem draws attached entities at their master's position plus an offset and
// copies the master's alpha. Entities attached to a deleted master are removed.
type AttachSystem struct {
	Entities ecs.Query[attached]

	masters *ecs.View[master]
}

func (s *AttachSystem) Setup(storage *ecs.Storage) {
	s.masters = ecs.NewView[master](storage)
	storage.AddListener(nil, ecs.ListenerFuncs{Removed: s.masterRemoved})
}

func (s *AttachSystem) masterRemoved(cmds *ecs.Commands, removed ecs.EntityId) {
	for id, e := range s.Entities.View().Iter() {
		if e.Attach.Master == removed {
			cmds.AddComponent(id, component.Remove{})
		}
	}
}

func (s *AttachSystem) Execute(frame *ecs.UpdateFrame) {
	for e := range s.Entities.Values() {
		m := s.masters.Get(e.Attach.Master)
		if m == nil {
			continue
		}
		e.Transform.InterpolatedPosition.X = m.Transform.InterpolatedPosition.X + e.Attach.Offset.X
		e.Transform.InterpolatedPosition.Y = m.Transform.InterpolatedPosition.Y + e.Attach.Offset.Y
		e.Transform.InterpolatedPosition.Z = e.Transform.Position.Z
		if e.Graphic != nil && m.Graphic != nil {
			e.Graphic.Alpha = m.Graphic.Alpha
		}
	}
}
