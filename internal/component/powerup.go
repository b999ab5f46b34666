package component

// PowerUpType is the kind of a collectable power-up. PowerUpNone marks an empty pattern slot.
type PowerUpType uint8

const (
	PowerUpNone PowerUpType = iota
	PowerUpSpeed1
	PowerUpSpeed2
	PowerUpLife
	PowerUpShield
)

func (t PowerUpType) String() string {
	switch t {
	case PowerUpSpeed1:
		return "SPEED_1"
	case PowerUpSpeed2:
		return "SPEED_2"
	case PowerUpLife:
		return "LIFE"
	case PowerUpShield:
		return "SHIELD"
	default:
		return "NONE"
	}
}

// Animation returns the animation played by a power-up of this type.
func (t PowerUpType) Animation() AnimationType {
	switch t {
	case PowerUpSpeed1:
		return AnimationSpeed1
	case PowerUpSpeed2:
		return AnimationSpeed2
	case PowerUpLife:
		return AnimationLife
	case PowerUpShield:
		return AnimationShield
	default:
		return AnimationNone
	}
}

type PowerUp struct {
	Type PowerUpType
}
