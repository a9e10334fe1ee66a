package scene

import "fmt"

// Effect selects the post-processing transform applied to the scene image.
// Values match effectIndex in the post-processing shader.
type Effect int32

const (
	EffectNone Effect = iota
	EffectInvert
	EffectRedOverlay
	EffectZoomOut
	EffectWave

	effectCount
)

var effectNames = [effectCount]string{
	"None",
	"Invert",
	"Red Overlay",
	"Zooming Out",
	"Wave",
}

// EffectNames lists display names in index order.
func EffectNames() []string {
	return effectNames[:]
}

func (e Effect) Valid() bool {
	return e >= 0 && e < effectCount
}

func (e Effect) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Effect(%d)", int32(e))
	}
	return effectNames[e]
}

// Clamp maps out-of-range values to the nearest valid effect.
func (e Effect) Clamp() Effect {
	switch {
	case e < 0:
		return EffectNone
	case e >= effectCount:
		return effectCount - 1
	}
	return e
}
