package system

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/internal/component"
)

// WorldDigest hashes the simulated state of every entity: ids, positions, velocities and
// player stats. Two runs with the same seed and frame deltas produce the same digest.
func WorldDigest(storage *ecs.Storage) uint64 {
	ids := storage.Entities()
	slices.Sort(ids)

	h := xxhash.New()
	var buf [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeF32 := func(vs ...float32) {
		for _, v := range vs {
			binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(v))
			_, _ = h.Write(buf[:4])
		}
	}

	for _, id := range ids {
		writeU64(uint64(id))
		if t := ecs.ReadComponent[component.Transform](storage, id); t != nil {
			writeF32(t.Position.X, t.Position.Y, t.Position.Z, t.Size.X, t.Size.Y)
		}
		if m := ecs.ReadComponent[component.Move](storage, id); m != nil {
			writeF32(m.Speed.X, m.Speed.Y)
		}
		if p := ecs.ReadComponent[component.Player](storage, id); p != nil {
			writeF32(p.Life, p.Shield, p.Distance)
		}
		if r := ecs.ReadComponent[component.Remove](storage, id); r != nil {
			writeF32(r.Delay)
		}
	}
	return h.Sum64()
}
