// Package ui builds the ImGui control surface that edits a scene.Frame.
package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"lighting-sandbox/scene"
)

// Editable ranges.
const (
	MaxScroll       = 1
	MinScale        = 1
	MaxScale        = 5
	MaxSpotRange    = 30
	MaxSpotAngle    = 180
	MaxSpotFalloff  = 5
	MinShininess    = 1
	MaxShininess    = 512
)

// Drag range for intensities and attenuation factors. These are nominal
// only: a typed-in value outside it is kept.
const (
	nominalMin = 0
	nominalMax = 1
)

// ControlSurface draws the editing windows. Widgets write straight into the
// Frame; the next RenderFrame picks the values up.
type ControlSurface struct {
	frame *scene.Frame

	// Smoothed frame time in seconds for the Render window.
	frameTime float32
}

func NewControlSurface(f *scene.Frame) *ControlSurface {
	return &ControlSurface{frame: f}
}

// Build emits every window. Call between imgui.NewFrame and imgui.Render.
func (cs *ControlSurface) Build() {
	f := cs.frame
	cs.sampleFrameTime(f.DeltaTime)

	window("Point Light", 10, 10, func() { pointLightPanel(&f.Lights) })
	window("Directional Light", 10, 300, func() { directionalLightPanel(&f.Lights.Directional) })
	window("Spot Light", 10, 420, func() { spotLightPanel(&f.Lights.Spot) })
	window("Material", 820, 10, func() { materialPanel(&f.Material) })
	window("Texture", 820, 170, func() { texturePanel(&f.Texture) })
	window("Post Processing", 820, 320, func() { postProcessingPanel(f) })
	window("Render", 820, 400, func() { cs.renderPanel() })

	Sanitize(f)
}

func window(title string, x, y float32, body func()) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: x, Y: y}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	if imgui.BeginV(title, nil, imgui.WindowFlagsAlwaysAutoResize) {
		body()
	}
	imgui.End()
}

func vec3(v *mgl32.Vec3) *[3]float32 { return (*[3]float32)(v) }

// ── Panels ───────────────────────────────────────────────────────────────────

func pointLightPanel(lc *scene.LightCollection) {
	count := int32(lc.Count)
	if imgui.SliderIntV("Count", &count, 0, scene.MaxPointLights, "%d", 0) {
		lc.Count = int(count)
	}
	imgui.ColorEdit3V("Color", vec3(&lc.Point.Color), 0)
	imgui.DragFloatV("Intensity", &lc.Point.Intensity, 0.01, nominalMin, nominalMax, "%.2f", 0)

	if imgui.CollapsingHeaderV("Attenuation", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.DragFloatV("Constant", &lc.Point.ConstK, 0.01, nominalMin, nominalMax, "%.2f", 0)
		imgui.DragFloatV("Linear", &lc.Point.LinearK, 0.01, nominalMin, nominalMax, "%.2f", 0)
		imgui.DragFloatV("Quadratic", &lc.Point.QuadraticK, 0.01, nominalMin, nominalMax, "%.2f", 0)
	}
	if imgui.CollapsingHeaderV("Orbit", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.DragFloat3("Center", vec3(&lc.Orbit.Center))
		imgui.DragFloatV("Radius", &lc.Orbit.Radius, 0.1, 0, 0, "%.1f", 0)
		imgui.DragFloatV("Speed", &lc.Orbit.Speed, 0.01, 0, 0, "%.2f", 0)
	}
}

func directionalLightPanel(dl *scene.DirectionalLight) {
	imgui.DragFloat3("Direction", vec3(&dl.Direction))
	imgui.ColorEdit3V("Color", vec3(&dl.Color), 0)
	imgui.DragFloatV("Intensity", &dl.Intensity, 0.01, nominalMin, nominalMax, "%.2f", 0)
}

func spotLightPanel(sl *scene.SpotLight) {
	imgui.DragFloat3("Position", vec3(&sl.Position))
	imgui.DragFloat3("Direction", vec3(&sl.Direction))
	imgui.ColorEdit3V("Color", vec3(&sl.Color), 0)
	imgui.DragFloatV("Intensity", &sl.Intensity, 0.01, nominalMin, nominalMax, "%.2f", 0)
	imgui.SliderFloatV("Range", &sl.Range, 0, MaxSpotRange, "%.1f", 0)
	imgui.SliderFloatV("Inner Angle", &sl.InnerAngle, 0, MaxSpotAngle, "%.1f", 0)
	imgui.SliderFloatV("Outer Angle", &sl.OuterAngle, 0, MaxSpotAngle, "%.1f", 0)
	imgui.SliderFloatV("Falloff", &sl.AngleFalloff, 0, MaxSpotFalloff, "%.2f", 0)
}

func materialPanel(m *scene.Material) {
	imgui.ColorEdit3V("Color", vec3(&m.Color), 0)
	imgui.SliderFloatV("Ambient K", &m.AmbientK, 0, 1, "%.2f", 0)
	imgui.SliderFloatV("Diffuse K", &m.DiffuseK, 0, 1, "%.2f", 0)
	imgui.SliderFloatV("Specular K", &m.SpecularK, 0, 1, "%.2f", 0)
	imgui.DragFloatV("Shininess", &m.Shininess, 1, MinShininess, MaxShininess, "%.0f", 0)
}

func texturePanel(t *scene.TextureParams) {
	imgui.SliderFloatV("Scroll X", &t.ScrollSpeedX, -MaxScroll, MaxScroll, "%.2f", 0)
	imgui.SliderFloatV("Scroll Y", &t.ScrollSpeedY, -MaxScroll, MaxScroll, "%.2f", 0)
	imgui.SliderFloatV("Scale X", &t.ScaleX, MinScale, MaxScale, "%.2f", 0)
	imgui.SliderFloatV("Scale Y", &t.ScaleY, MinScale, MaxScale, "%.2f", 0)
	imgui.SliderFloatV("Normal Intensity", &t.NormalIntensity, 0, 1, "%.2f", 0)
}

func postProcessingPanel(f *scene.Frame) {
	if imgui.BeginCombo("Effect", f.Effect.String()) {
		for i, name := range scene.EffectNames() {
			e := scene.Effect(i)
			if imgui.SelectableV(name, e == f.Effect, 0, imgui.Vec2{}) {
				f.Effect = e
			}
		}
		imgui.EndCombo()
	}
}

func (cs *ControlSurface) renderPanel() {
	f := cs.frame
	imgui.ColorEdit3V("Background", vec3(&f.Background), 0)
	imgui.Checkbox("Wireframe", &f.Wireframe)
	imgui.Checkbox("Shadows", &f.Shadows)
	imgui.Checkbox("Ground Plane", &f.ShowPlane)
	if imgui.Button("Reset Camera") {
		f.Camera.Reset()
	}
	imgui.Separator()
	imgui.Text(cs.FrameStats())
}

// ── Limits ───────────────────────────────────────────────────────────────────

// Sanitize pulls ranged values back into their slider range. Typed-in widget
// values can go past the slider limits. Light colours, intensities,
// attenuation factors and the orbit are left as typed.
func Sanitize(f *scene.Frame) {
	lc := &f.Lights
	lc.Count = lc.ActiveCount()

	sl := &lc.Spot
	sl.Range = mgl32.Clamp(sl.Range, 0, MaxSpotRange)
	sl.OuterAngle = mgl32.Clamp(sl.OuterAngle, 0, MaxSpotAngle)
	sl.InnerAngle = mgl32.Clamp(sl.InnerAngle, 0, sl.OuterAngle)
	sl.AngleFalloff = mgl32.Clamp(sl.AngleFalloff, 0, MaxSpotFalloff)

	m := &f.Material
	m.AmbientK = mgl32.Clamp(m.AmbientK, 0, 1)
	m.DiffuseK = mgl32.Clamp(m.DiffuseK, 0, 1)
	m.SpecularK = mgl32.Clamp(m.SpecularK, 0, 1)
	m.Shininess = mgl32.Clamp(m.Shininess, MinShininess, MaxShininess)

	t := &f.Texture
	t.ScrollSpeedX = mgl32.Clamp(t.ScrollSpeedX, -MaxScroll, MaxScroll)
	t.ScrollSpeedY = mgl32.Clamp(t.ScrollSpeedY, -MaxScroll, MaxScroll)
	t.ScaleX = mgl32.Clamp(t.ScaleX, MinScale, MaxScale)
	t.ScaleY = mgl32.Clamp(t.ScaleY, MinScale, MaxScale)
	t.NormalIntensity = mgl32.Clamp(t.NormalIntensity, 0, 1)

	f.Effect = f.Effect.Clamp()
}

// ── Stats ────────────────────────────────────────────────────────────────────

const frameTimeSmoothing = 0.1

func (cs *ControlSurface) sampleFrameTime(dt float32) {
	if dt <= 0 {
		return
	}
	if cs.frameTime == 0 {
		cs.frameTime = dt
		return
	}
	cs.frameTime += (dt - cs.frameTime) * frameTimeSmoothing
}

// FrameStats formats the smoothed frame time.
func (cs *ControlSurface) FrameStats() string {
	if cs.frameTime <= 0 {
		return "Frame: --"
	}
	return fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", cs.frameTime*1000, 1/cs.frameTime)
}
