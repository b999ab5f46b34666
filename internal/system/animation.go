package system

import (
	"fmt"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"go.uber.org/zap"
)

type animated struct {
	ecs.EntityId
	Animation *component.Animation
	Graphic   *component.Graphic
}

// AnimationSystem advances animations and pushes the current key frame to the graphic.
type AnimationSystem struct {
	Entities ecs.Query[animated]

	atlas Atlas
	log   *zap.Logger
	cache map[component.AnimationType]*component.Clip
}

func NewAnimationSystem(atlas Atlas, log *zap.Logger) *AnimationSystem {
	return &AnimationSystem{
		atlas: atlas,
		log:   log,
		cache: make(map[component.AnimationType]*component.Clip),
	}
}

func (s *AnimationSystem) Setup(storage *ecs.Storage) {
	view := s.Entities.View()
	for _, e := range view.Iter() {
		s.bind(e)
	}
	storage.AddListener(view.Family(), ecs.ListenerFuncs{
		Added: func(_ *ecs.Commands, id ecs.EntityId) {
			if e := view.Get(id); e != nil {
				s.bind(*e)
			}
		},
	})
}

// bind resolves the clip of a new entity and shows its first frame right away.
func (s *AnimationSystem) bind(e animated) {
	e.Animation.Clip = s.Clip(e.Animation.Type)
	e.Graphic.Region = e.Animation.Clip.KeyFrame(e.Animation.StateTime)
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for e := range s.Entities.Values() {
		a := e.Animation
		if a.Type == component.AnimationNone {
			s.log.Error("animation without type", zap.Stringer("entity", e.EntityId))
			continue
		}

		if a.Clip != nil && a.Clip.Type == a.Type {
			a.StateTime += dt
		} else {
			a.StateTime = 0
			a.Clip = s.Clip(a.Type)
		}
		e.Graphic.Region = a.Clip.KeyFrame(a.StateTime)
	}
}

// Clip returns the cached clip for t, loading it from the atlas on first use. Types without
// frames use the error frames; it panics when those are missing too.
func (s *AnimationSystem) Clip(t component.AnimationType) *component.Clip {
	if clip, ok := s.cache[t]; ok {
		return clip
	}

	regions := s.atlas.FindRegions(t.AtlasKey())
	if len(regions) == 0 {
		regions = s.atlas.FindRegions(component.ErrorAtlasKey)
		if len(regions) == 0 {
			panic(fmt.Sprintf("atlas has no %q regions", component.ErrorAtlasKey))
		}
		s.log.Error("no regions for animation", zap.Stringer("type", t), zap.String("key", t.AtlasKey()))
	} else {
		s.log.Debug("adding animation", zap.Stringer("type", t), zap.Int("regions", len(regions)))
	}

	clip := component.NewClip(t, regions)
	s.cache[t] = clip
	return clip
}
