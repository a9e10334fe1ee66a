package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights matches the size of the _PointLights array in the lit shader.
const MaxPointLights = 8

// Light is the part shared by every light kind.
type Light struct {
	Position  mgl32.Vec3 // unused by directional lights
	Color     mgl32.Vec3
	Intensity float32
}

// PointLight holds the attenuation parameters shared by every orbiting
// point light. Per-light positions come from LightCollection.
type PointLight struct {
	Light
	ConstK     float32
	LinearK    float32
	QuadraticK float32
}

type DirectionalLight struct {
	Light
	Direction mgl32.Vec3
}

// SpotLight angles are in degrees.
type SpotLight struct {
	Light
	Direction    mgl32.Vec3
	Range        float32
	InnerAngle   float32
	OuterAngle   float32
	AngleFalloff float32
}

// Orbit describes the circle point lights travel on. Speed is in radians per
// second.
type Orbit struct {
	Center mgl32.Vec3
	Radius float32
	Speed  float32
}

// LightCollection is the runtime light state. Point-light positions are not
// stored; they are derived from Count, Orbit and time every frame.
type LightCollection struct {
	Count       int
	Orbit       Orbit
	Point       PointLight
	Directional DirectionalLight
	Spot        SpotLight
}

// DefaultLightCollection returns one white orbiting point light. The
// directional and spot lights start at zero intensity.
func DefaultLightCollection() LightCollection {
	return LightCollection{
		Count: 1,
		Orbit: Orbit{
			Center: mgl32.Vec3{0, 5, 0},
			Radius: 10,
			Speed:  1,
		},
		Point: PointLight{
			Light:      Light{Color: mgl32.Vec3{1, 1, 1}, Intensity: 1},
			ConstK:     1,
			LinearK:    1,
			QuadraticK: 0.5,
		},
		Directional: DirectionalLight{
			Light:     Light{Color: mgl32.Vec3{1, 1, 1}},
			Direction: mgl32.Vec3{0, -1, 0},
		},
		Spot: SpotLight{
			Light:        Light{Position: mgl32.Vec3{0, 5, 0}, Color: mgl32.Vec3{1, 1, 1}},
			Direction:    mgl32.Vec3{0, -1, 0},
			Range:        15,
			InnerAngle:   20,
			OuterAngle:   30,
			AngleFalloff: 1,
		},
	}
}

// ActiveCount returns Count clamped to [0, MaxPointLights].
func (lc *LightCollection) ActiveCount() int {
	switch {
	case lc.Count < 0:
		return 0
	case lc.Count > MaxPointLights:
		return MaxPointLights
	}
	return lc.Count
}

// PointLightAngles returns the base angle of each active light in degrees:
// i*(360/count) with integer division, so counts that do not divide 360
// leave a slightly larger gap before the first light.
func PointLightAngles(count int) []int {
	if count <= 0 {
		return nil
	}
	step := 360 / count
	angles := make([]int, count)
	for i := range angles {
		angles[i] = step * i
	}
	return angles
}

// OrbitPosition returns where the light with base angle angleDeg is at time t.
func (o Orbit) OrbitPosition(angleDeg int, t float32) mgl32.Vec3 {
	a := float64(mgl32.DegToRad(float32(angleDeg))) + float64(t*o.Speed)
	return o.Center.Add(mgl32.Vec3{
		float32(math.Cos(a)) * o.Radius,
		0,
		float32(math.Sin(a)) * o.Radius,
	})
}

// PointLightPositions computes the active point-light positions at time t.
func (lc *LightCollection) PointLightPositions(t float32) []mgl32.Vec3 {
	angles := PointLightAngles(lc.ActiveCount())
	positions := make([]mgl32.Vec3, len(angles))
	for i, deg := range angles {
		positions[i] = lc.Orbit.OrbitPosition(deg, t)
	}
	return positions
}

// LightSpace returns an orthographic projection * view looking along the
// directional light, covering a box of half-extent halfSize around focus.
func (d DirectionalLight) LightSpace(focus mgl32.Vec3, halfSize float32) mgl32.Mat4 {
	dir := d.Direction
	if dir.Len() < 1e-6 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	dir = dir.Normalize()

	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(dir.Dot(up))) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	eye := focus.Sub(dir.Mul(halfSize * 2))
	view := mgl32.LookAtV(eye, focus, up)
	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, halfSize*4)
	return proj.Mul4(view)
}
