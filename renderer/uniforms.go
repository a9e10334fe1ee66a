package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"lighting-sandbox/scene"
)

type pointLightNames struct {
	position, color, intensity string
	constK, linearK, quadraticK string
}

// Uniform names for each _PointLights slot, built once.
var pointLightUniforms = func() (names [scene.MaxPointLights]pointLightNames) {
	for i := range names {
		p := fmt.Sprintf("_PointLights[%d]", i)
		names[i] = pointLightNames{
			position:   p + ".position",
			color:      p + ".light.color",
			intensity:  p + ".light.intensity",
			constK:     p + ".constK",
			linearK:    p + ".linearK",
			quadraticK: p + ".quadraticK",
		}
	}
	return names
}()

// setPointLight writes slot i. All slots share the collection's colour,
// intensity and attenuation; only the position differs.
func setPointLight(sh Shader, i int, pos mgl32.Vec3, pl scene.PointLight) {
	n := pointLightUniforms[i]
	sh.SetVec3(n.position, pos)
	sh.SetVec3(n.color, pl.Color)
	sh.SetFloat(n.intensity, pl.Intensity)
	sh.SetFloat(n.constK, pl.ConstK)
	sh.SetFloat(n.linearK, pl.LinearK)
	sh.SetFloat(n.quadraticK, pl.QuadraticK)
}

func setDirectionalLight(sh Shader, dl scene.DirectionalLight) {
	sh.SetVec3("_DirectionalLight.direction", dl.Direction)
	sh.SetVec3("_DirectionalLight.light.color", dl.Color)
	sh.SetFloat("_DirectionalLight.light.intensity", dl.Intensity)
}

func setSpotLight(sh Shader, sl scene.SpotLight) {
	sh.SetVec3("_SpotLight.position", sl.Position)
	sh.SetVec3("_SpotLight.direction", sl.Direction)
	sh.SetVec3("_SpotLight.light.color", sl.Color)
	sh.SetFloat("_SpotLight.light.intensity", sl.Intensity)
	sh.SetFloat("_SpotLight.range", sl.Range)
	sh.SetFloat("_SpotLight.innerAngle", sl.InnerAngle)
	sh.SetFloat("_SpotLight.outerAngle", sl.OuterAngle)
	sh.SetFloat("_SpotLight.angleFalloff", sl.AngleFalloff)
}

func setMaterial(sh Shader, m scene.Material) {
	sh.SetVec3("_Material.color", m.Color)
	sh.SetFloat("_Material.ambientK", m.AmbientK)
	sh.SetFloat("_Material.diffuseK", m.DiffuseK)
	sh.SetFloat("_Material.specularK", m.SpecularK)
	sh.SetFloat("_Material.shininess", m.Shininess)
}

func setTextureParams(sh Shader, t scene.TextureParams) {
	sh.SetFloat("scrollSpeedX", t.ScrollSpeedX)
	sh.SetFloat("scrollSpeedY", t.ScrollSpeedY)
	sh.SetFloat("scalingX", t.ScaleX)
	sh.SetFloat("scalingY", t.ScaleY)
	sh.SetFloat("normalIntensity", t.NormalIntensity)
}
