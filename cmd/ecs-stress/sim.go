package main

import (
	"context"
	"math"
	"time"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/prefab"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
)

// frameStep is the simulated frame delta, independent of wall time so runs are reproducible.
const frameStep = 1.0 / 60.0

// autopilot sweeps the pointer across the world so the ship keeps turning.
type autopilot struct {
	width float32
	frame int
}

func (a *autopilot) PointerX() float32 {
	return a.width/2 + a.width*0.45*float32(math.Sin(float64(a.frame)/45))
}

type worldSpace struct{}

func (worldSpace) Unproject(p vmath.Vec2) vmath.Vec2 { return p }

type noRegions struct{}

func (noRegions) FindRegions(string) []component.Region { return []component.Region{region{}} }

type region struct{}

func (region) Name() string { return "stress" }

// WorldResult is the outcome of one simulated world.
type WorldResult struct {
	Seed     uint64
	Frames   int
	Rounds   int
	Best     float32
	Entities int
	Digest   uint64
	Samples  []time.Duration
}

// runWorld plays frames of the game with an autopilot and restarts the round whenever the
// ship is destroyed.
func runWorld(ctx context.Context, cfg config.Config, seed uint64, frames int) (WorldResult, error) {
	cfg.PowerUp.Seed = seed
	res := WorldResult{Seed: seed, Samples: make([]time.Duration, 0, frames)}

	storage := ecs.NewStorage(component.NewRegistry())
	scheduler := ecs.NewScheduler(storage)
	bus := event.NewBus()
	pilot := &autopilot{width: cfg.World.Width}
	set := system.NewSet(system.Deps{
		Config:   &cfg,
		Events:   bus,
		Rand:     system.NewRand(seed),
		Pointer:  pilot,
		Viewport: worldSpace{},
		Atlas:    noRegions{},
	})
	set.Register(scheduler)

	event.Subscribe(bus, func(e event.GameOver) {
		res.Rounds++
		res.Best = max(res.Best, e.Distance)
	})

	prefab.DarkMatter(storage, cfg.World.Width, cfg.Damage.AreaHeight)
	prefab.PlayerShip(storage)

	for i := range frames {
		// Cancellation is checked in batches.
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		pilot.frame = i

		start := time.Now()
		scheduler.Once(frameStep)
		bus.Dispatch()
		res.Samples = append(res.Samples, time.Since(start))
		res.Frames++

		if set.Damage.Players.Family().Len() == 0 {
			prefab.PlayerShip(storage)
		}
	}

	res.Entities = storage.EntityCount()
	res.Digest = system.WorldDigest(storage)
	return res, nil
}
