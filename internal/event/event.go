// Package event is the synchronous game event bus. Systems publish during a frame and
// the game drains the queue once per frame, delivering events in publish order.
package event

import (
	"reflect"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
)

type Event interface {
	event()
}

type PlayerSpawn struct{}

type PlayerMove struct {
	Distance float32
	Speed    float32
}

type ShipDamaged struct {
	Life    float32
	MaxLife float32
}

type GameOver struct {
	Distance float32
}

type PowerUpCollected struct {
	Type   component.PowerUpType
	Player ecs.EntityId
}

type RestartGame struct{}

func (PlayerSpawn) event() {}
func (PlayerMove) event() {}
func (ShipDamaged) event() {}
func (GameOver) event() {}
func (PowerUpCollected) event() {}
func (RestartGame) event() {}

// Publisher is the side of the bus systems see.
type Publisher interface {
	Publish(e Event)
}

type Handler func(Event)

type Bus struct {
	queue    []Event
	handlers map[reflect.Type][]Handler
	all      []Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]Handler)}
}

// Publish queues e for the next Dispatch.
func (b *Bus) Publish(e Event) {
	b.queue = append(b.queue, e)
}

// Subscribe registers fn for events of type T.
func Subscribe[T Event](b *Bus, fn func(T)) {
	t := reflect.TypeFor[T]()
	b.handlers[t] = append(b.handlers[t], func(e Event) {
		fn(e.(T))
	})
}

// SubscribeAll registers fn for every event.
func (b *Bus) SubscribeAll(fn Handler) {
	b.all = append(b.all, fn)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return len(b.queue)
}

// Dispatch delivers queued events in publish order. Events published by handlers are
// delivered in the same call.
func (b *Bus) Dispatch() {
	for i := 0; i < len(b.queue); i++ {
		e := b.queue[i]
		for _, h := range b.handlers[reflect.TypeOf(e)] {
			h(e)
		}
		for _, h := range b.all {
			h(e)
		}
	}
	clear(b.queue)
	b.queue = b.queue[:0]
}

// Reset drops queued events without delivering them.
func (b *Bus) Reset() {
	clear(b.queue)
	b.queue = b.queue[:0]
}
