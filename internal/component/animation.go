package component

import "math"

// DefaultFrameDuration is the time a key frame is shown at speed rate 1.
const DefaultFrameDuration = 1.0 / 20.0

// ErrorAtlasKey names the placeholder frames used when an animation has none.
const ErrorAtlasKey = "error"

type PlayMode uint8

const (
	PlayLoop PlayMode = iota
	PlayNormal
)

type AnimationType uint8

const (
	AnimationNone AnimationType = iota
	AnimationDarkMatter
	AnimationFire
	AnimationSpeed1
	AnimationSpeed2
	AnimationLife
	AnimationShield
	AnimationExplosion
	animationTypeCount
)

type animationInfo struct {
	name      string
	atlasKey  string
	playMode  PlayMode
	speedRate float32
}

var animationTable = [animationTypeCount]animationInfo{
	AnimationNone:       {"NONE", "", PlayLoop, 1},
	AnimationDarkMatter: {"DARK_MATTER", "dark_matter", PlayLoop, 3},
	AnimationFire:       {"FIRE", "fire", PlayLoop, 1},
	AnimationSpeed1:     {"SPEED_1", "orb_blue", PlayLoop, 0.5},
	AnimationSpeed2:     {"SPEED_2", "orb_yellow", PlayLoop, 0.5},
	AnimationLife:       {"LIFE", "life", PlayLoop, 1},
	AnimationShield:     {"SHIELD", "shield", PlayLoop, 0.75},
	AnimationExplosion:  {"EXPLOSION", "explosion", PlayNormal, 0.5},
}

// AnimationTypes lists every animation type in declaration order.
func AnimationTypes() []AnimationType {
	out := make([]AnimationType, 0, animationTypeCount)
	for t := AnimationNone; t < animationTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t AnimationType) info() animationInfo {
	if t >= animationTypeCount {
		return animationTable[AnimationNone]
	}
	return animationTable[t]
}

func (t AnimationType) String() string { return t.info().name }
func (t AnimationType) AtlasKey() string { return t.info().atlasKey }
func (t AnimationType) PlayMode() PlayMode { return t.info().playMode }
func (t AnimationType) SpeedRate() float32 { return t.info().speedRate }

// FrameDuration is the time each key frame of the animation is shown.
func (t AnimationType) FrameDuration() float32 {
	return DefaultFrameDuration / t.SpeedRate()
}

// Clip is a resolved key frame sequence for one animation type.
type Clip struct {
	Type          AnimationType
	Frames        []Region
	FrameDuration float32
	Mode          PlayMode
}

func NewClip(t AnimationType, frames []Region) *Clip {
	return &Clip{
		Type:          t,
		Frames:        frames,
		FrameDuration: t.FrameDuration(),
		Mode:          t.PlayMode(),
	}
}

// KeyFrame returns the frame shown after stateTime seconds. Normal clips hold their last frame.
func (c *Clip) KeyFrame(stateTime float32) Region {
	if len(c.Frames) == 0 {
		return nil
	}
	index := int(math.Floor(float64(stateTime / c.FrameDuration)))
	if index < 0 {
		index = 0
	}
	if c.Mode == PlayLoop {
		return c.Frames[index%len(c.Frames)]
	}
	return c.Frames[min(index, len(c.Frames)-1)]
}

// Finished reports whether a normal clip has shown its last frame for a full frame duration.
func (c *Clip) Finished(stateTime float32) bool {
	if c.Mode == PlayLoop {
		return false
	}
	return int(stateTime/c.FrameDuration) >= len(c.Frames)
}

type Animation struct {
	Type      AnimationType
	StateTime float32
	Clip      *Clip
}
