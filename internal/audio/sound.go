// Package audio plays the game's sound effects. Every sound is synthesised at start up,
// so the game ships without audio assets.
package audio

import (
	"github.com/plus3/darkmatter/internal/component"
	"github.com/plus3/darkmatter/internal/event"
)

// Asset is a sound effect.
type Asset uint8

const (
	Explosion Asset = iota
	Boost1
	Boost2
	Life
	Shield
	Block
	Damage
	Spawn
	assetCount
)

var assetNames = [assetCount]string{"EXPLOSION", "BOOST_1", "BOOST_2", "LIFE", "SHIELD", "BLOCK", "DAMAGE", "SPAWN"}

func (a Asset) String() string {
	if a >= assetCount {
		return "UNKNOWN"
	}
	return assetNames[a]
}

// Assets lists every sound effect.
func Assets() []Asset {
	out := make([]Asset, assetCount)
	for i := range out {
		out[i] = Asset(i)
	}
	return out
}

// SoundFor maps a game event to its sound. Events without a sound return false.
func SoundFor(e event.Event) (Asset, bool) {
	switch e := e.(type) {
	case event.GameOver:
		return Explosion, true
	case event.PowerUpCollected:
		switch e.Type {
		case component.PowerUpSpeed1:
			return Boost1, true
		case component.PowerUpSpeed2:
			return Boost2, true
		case component.PowerUpLife:
			return Life, true
		case component.PowerUpShield:
			return Shield, true
		default:
			return Block, true
		}
	case event.ShipDamaged:
		return Damage, true
	case event.PlayerSpawn:
		return Spawn, true
	}
	return 0, false
}

// Player plays sound effects.
type Player interface {
	Play(a Asset)
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(Asset) {}

// Bind plays the sound of every event delivered by bus.
func Bind(bus *event.Bus, p Player) {
	bus.SubscribeAll(func(e event.Event) {
		if a, ok := SoundFor(e); ok {
			p.Play(a)
		}
	})
}
