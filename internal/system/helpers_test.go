package system_test

import (
	"reflect"
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/event"
	"github.com/plus3/darkmatter/internal/system"
	"github.com/plus3/darkmatter/internal/vmath"
)

const step = 1.0 / 25.0

type region string

func (r region) Name() string { return string(r) }

type fakeAtlas map[string][]component.Region

func (a fakeAtlas) FindRegions(key string) []component.Region {
	return a[key]
}

func regions(names ...string) []component.Region {
	out := make([]component.Region, len(names))
	for i, n := range names {
		out[i] = region(n)
	}
	return out
}

func newAtlas() fakeAtlas {
	return fakeAtlas{
		"error":       regions("error"),
		"ship_base":   regions("ship_base"),
		"ship_left":   regions("ship_left"),
		"ship_right":  regions("ship_right"),
		"fire":        regions("fire_0", "fire_1"),
		"dark_matter": regions("dm_0", "dm_1", "dm_2"),
		"explosion":   regions("boom_0", "boom_1"),
	}
}

type fixedPointer float32

func (p fixedPointer) PointerX() float32 { return float32(p) }

type identityViewport struct{}

func (identityViewport) Unproject(screen vmath.Vec2) vmath.Vec2 { return screen }

type recordingRenderer struct {
	frames [][]string
	scene  *system.Scene
}

func (r *recordingRenderer) Render(scene *system.Scene) {
	var names []string
	for _, s := range scene.Sprites {
		names = append(names, s.Graphic.Region.Name())
	}
	r.frames = append(r.frames, names)
	r.scene = scene
}

type fakeCamera struct {
	pos   vmath.Vec2
	moves int
}

func (c *fakeCamera) Position() vmath.Vec2 { return c.pos }

func (c *fakeCamera) SetPosition(p vmath.Vec2) {
	c.pos = p
	c.moves++
}

type heldKeys map[system.DebugKey]bool

func (k heldKeys) Pressed(key system.DebugKey) bool { return k[key] }

type harness struct {
	t         *testing.T
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	bus       *event.Bus
	events    []event.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	storage := ecs.NewStorage(component.NewRegistry())
	h := &harness{
		t:         t,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		bus:       event.NewBus(),
	}
	h.bus.SubscribeAll(func(e event.Event) {
		h.events = append(h.events, e)
	})
	return h
}

// frame runs one scheduler pass and delivers the events it published.
func (h *harness) frame(dt float64) {
	h.scheduler.Once(dt)
	h.bus.Dispatch()
}

func (h *harness) frames(n int, dt float64) {
	for range n {
		h.frame(dt)
	}
}

func eventsOf[T event.Event](h *harness) []T {
	var out []T
	for _, e := range h.events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func defaults() *config.Config {
	return config.Default()
}

func spawnPlayer(s ecs.Spawner, x, y float32, speed vmath.Vec2) ecs.EntityId {
	t := component.Transform{Size: vmath.V2(1, 1)}
	t.SetInitialPosition(x, y, 1)
	p := component.Player{}
	p.Reset()
	return s.Spawn(t, component.Move{Speed: speed}, p, component.Facing{}, component.Graphic{Alpha: 1})
}

var componentTypeRemove = reflect.TypeFor[component.Remove]()
