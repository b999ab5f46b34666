package ecs_test

import (
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/stretchr/testify/assert"
)

func TestStorageStats(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[int](registry)
	ecs.RegisterComponent[string](registry)
	ecs.RegisterComponent[float64](registry)

	storage := ecs.NewStorage(registry)

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.ArchetypeCount)
	assert.Equal(t, 0, stats.TotalEntityCount)
	assert.Equal(t, 0, stats.SingletonCount)

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	storage.Spawn(200.0, "test")

	ecs.NewSingleton[float64](storage, 3.14)
	ecs.NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	if assert.Len(t, stats.ArchetypeBreakdown, 2) {
		assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
		assert.Equal(t, []string{"int", "string"}, stats.ArchetypeBreakdown[0].ComponentTypes)
		assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
	}
}

func TestPoolStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{})
	storage.Spawn(Position{})
	storage.Delete(a)

	for _, p := range storage.CollectStats().Pools {
		if p.ComponentType == "ecs_test.Position" {
			assert.Equal(t, 1, p.Live)
			assert.Equal(t, 1, p.Free)
			return
		}
	}
	t.Fatal("position pool not reported")
}
