package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/darkmatter/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type ReaperSystem struct {
	Entities ecs.Query[struct {
		ecs.EntityId
		*Health
	}]
}

func (s *ReaperSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Entities.Iter() {
		if item.Current <= 0 {
			frame.Commands.Delete(id)
		}
	}
}

type CountingSystem struct {
	Entities ecs.Query[struct{ *Health }]
	Seen     int
	setup    int
}

func (s *CountingSystem) Setup(storage *ecs.Storage) {
	s.setup++
}

func (s *CountingSystem) Execute(frame *ecs.UpdateFrame) {
	s.Seen = s.Entities.Len()
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	scheduler.Register(movement)

	id := storage.Spawn(Position{}, Velocity{DX: 1, DY: 2})
	storage.Spawn(Health{Current: 100, Max: 100})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	assert.Equal(t, 2, movement.ExecuteCount)
	pos := ecs.ReadComponent[Position](storage, id)
	assert.InDelta(t, 1.0, pos.X, 1e-6)
	assert.InDelta(t, 2.0, pos.Y, 1e-6)
}

func TestSchedulerFlushesAfterEachSystem(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	reaper := &ReaperSystem{}
	counter := &CountingSystem{}
	scheduler.Register(reaper, counter)
	assert.Equal(t, 1, counter.setup)

	storage.Spawn(Health{Current: 0})
	storage.Spawn(Health{Current: 5})

	scheduler.Once(1.0 / 60)
	assert.Equal(t, 1, counter.Seen, "later systems see earlier deletions")
}

func TestSchedulerEnableDisable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	scheduler.Register(movement)

	scheduler.SetEnabled(movement, false)
	assert.False(t, scheduler.Enabled(movement))
	scheduler.Once(0.1)
	assert.Equal(t, 0, movement.ExecuteCount)

	scheduler.SetEnabled(movement, true)
	scheduler.Once(0.1)
	assert.Equal(t, 1, movement.ExecuteCount)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{}, &CountingSystem{})

	for i := 0; i < 3; i++ {
		scheduler.Once(0.016)
	}

	stats := scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, int64(3), stats.Frames)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "CountingSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.True(t, s.Enabled)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
	}
}

func TestSchedulerRun(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	movement := &MovementSystem{}
	scheduler.Register(movement)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx, 5*time.Millisecond)

	assert.Greater(t, movement.ExecuteCount, 0)
}
