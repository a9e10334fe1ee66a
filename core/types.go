package core

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout uploaded to vertex buffers. Attribute
// locations follow field order: position 0, normal 1, uv 2, tangent 3,
// bitangent 4.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	UV        mgl32.Vec2
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
}

// Transform places an object in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// At returns an unrotated transform at pos with uniform scale s.
func At(pos mgl32.Vec3, s float32) Transform {
	t := NewTransform()
	t.Position = pos
	t.Scale = mgl32.Vec3{s, s, s}
	return t
}

// Matrix returns translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	rotation := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translation.Mul4(rotation).Mul4(scale)
}
