package system

import (
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
)

const (
	ShipBaseRegion  = "ship_base"
	ShipLeftRegion  = "ship_left"
	ShipRightRegion = "ship_right"
)

type shipSprite struct {
	Player  *component.Player
	Facing  *component.Facing
	Graphic *component.Graphic
}

// PlayerAnimationSystem picks the ship sprite matching the facing direction.
type PlayerAnimationSystem struct {
	Players ecs.Query[shipSprite]

	base, left, right component.Region
}

func NewPlayerAnimationSystem(atlas Atlas) *PlayerAnimationSystem {
	return &PlayerAnimationSystem{
		base:  firstRegion(atlas, ShipBaseRegion),
		left:  firstRegion(atlas, ShipLeftRegion),
		right: firstRegion(atlas, ShipRightRegion),
	}
}

func firstRegion(atlas Atlas, key string) component.Region {
	regions := atlas.FindRegions(key)
	if len(regions) == 0 {
		regions = atlas.FindRegions(component.ErrorAtlasKey)
	}
	if len(regions) == 0 {
		return nil
	}
	return regions[0]
}

func (s *PlayerAnimationSystem) Setup(storage *ecs.Storage) {
	view := s.Players.View()
	storage.AddListener(view.Family(), ecs.ListenerFuncs{
		Added: func(_ *ecs.Commands, id ecs.EntityId) {
			if e := view.Get(id); e != nil {
				e.Graphic.Region = s.base
			}
		},
	})
}

func (s *PlayerAnimationSystem) Execute(frame *ecs.UpdateFrame) {
	for p := range s.Players.Values() {
		if !p.Facing.Changed() && p.Graphic.Region != nil {
			continue
		}
		switch p.Facing.Direction {
		case component.FacingLeft:
			p.Graphic.Region = s.left
		case component.FacingRight:
			p.Graphic.Region = s.right
		default:
			p.Graphic.Region = s.base
		}
	}
}
