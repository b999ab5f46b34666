package ecs

import "sort"

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	FamilyCount        int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
	Pools              []PoolStats
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// PoolStats describes the component pool of one type.
type PoolStats struct {
	ComponentType string
	Live          int
	Free          int
}

// CollectStats gathers archetype, entity, singleton and pool statistics.
// Archetypes without entities are not reported.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: s.entities.alive,
		SingletonCount:   len(s.singletons),
		FamilyCount:      len(s.familyList),
	}

	for _, a := range s.archetypeList {
		if a.Len() == 0 {
			continue
		}
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    a.Len(),
		})
	}
	stats.ArchetypeCount = len(stats.ArchetypeBreakdown)
	sort.SliceStable(stats.ArchetypeBreakdown, func(i, j int) bool {
		return stats.ArchetypeBreakdown[i].EntityCount > stats.ArchetypeBreakdown[j].EntityCount
	})

	for _, t := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}

	for _, p := range s.pools {
		stats.Pools = append(stats.Pools, PoolStats{
			ComponentType: p.Type().String(),
			Live:          p.Live(),
			Free:          p.FreeCount(),
		})
	}

	return stats
}
