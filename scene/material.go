package scene

import "github.com/go-gl/mathgl/mgl32"

// Material is the Phong surface applied to every lit mesh in a frame.
type Material struct {
	Color     mgl32.Vec3 // diffuse tint, multiplied with the base texture
	AmbientK  float32    // 0–1
	DiffuseK  float32    // 0–1
	SpecularK float32    // 0–1
	Shininess float32    // specular exponent, 1–512
}

// DefaultMaterial returns a white material with every coefficient at 1.
func DefaultMaterial() Material {
	return Material{
		Color:     mgl32.Vec3{1, 1, 1},
		AmbientK:  1,
		DiffuseK:  1,
		SpecularK: 1,
		Shininess: 1,
	}
}

// TextureParams control how the lit shader samples its textures.
type TextureParams struct {
	ScrollSpeedX    float32 // UV units per second
	ScrollSpeedY    float32
	ScaleX          float32 // UV repeat factor
	ScaleY          float32
	NormalIntensity float32 // 0 disables normal mapping
}

func DefaultTextureParams() TextureParams {
	return TextureParams{ScaleX: 1, ScaleY: 1, NormalIntensity: 1}
}
