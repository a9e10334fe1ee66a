package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a yaw/pitch fly camera. Angles are in degrees.
type Camera struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

const (
	DefaultFOV = 60
	MinFOV     = 1
	MaxFOV     = 120
	MaxPitch   = 89.9
)

func NewCamera(aspectRatio float32) *Camera {
	c := &Camera{
		FOV:         DefaultFOV,
		AspectRatio: aspectRatio,
		NearPlane:   0.1,
		FarPlane:    100,
	}
	c.Reset()
	return c
}

// Reset puts the camera back at (0,0,5) looking down -Z.
func (c *Camera) Reset() {
	c.Position = mgl32.Vec3{0, 0, 5}
	c.Yaw = -90
	c.Pitch = 0
}

func (c *Camera) UpdateAspectRatio(width, height int) {
	if width > 0 && height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

func (c *Camera) Forward() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Forward().Cross(worldUp).Normalize()
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), worldUp)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Move translates along the camera axes. Each axis is -1, 0 or 1.
func (c *Camera) Move(forward, right, up, amount float32) {
	c.Position = c.Position.
		Add(c.Forward().Mul(forward * amount)).
		Add(c.Right().Mul(right * amount)).
		Add(c.Up().Mul(up * amount))
}

// Look turns the camera by a cursor delta in pixels. Moving the cursor up
// (negative dy) pitches up.
func (c *Camera) Look(dx, dy, sensitivity float32) {
	c.Yaw += dx * sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch-dy*sensitivity, -MaxPitch, MaxPitch)
}

// Zoom narrows the field of view by delta*speed degrees.
func (c *Camera) Zoom(delta, speed float32) {
	c.FOV = mgl32.Clamp(c.FOV-delta*speed, MinFOV, MaxFOV)
}
