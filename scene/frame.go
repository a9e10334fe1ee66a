package scene

import "github.com/go-gl/mathgl/mgl32"

// Frame carries everything one frame reads: what the control surface edited
// and what the loop sampled this tick. The loop owns a single Frame and
// passes it by pointer, so edits made by the UI are seen by the next render.
type Frame struct {
	Time      float32 // seconds since start
	DeltaTime float32

	Camera *Camera

	Lights   LightCollection
	Material Material
	Texture  TextureParams
	Effect   Effect

	Background mgl32.Vec3
	Wireframe  bool
	Shadows    bool // render the shadow stage into the depth target
	ShowPlane  bool // draw the ground plane under the primitives

	ScreenWidth  int32
	ScreenHeight int32
}

// NewFrame returns the startup state.
func NewFrame(width, height int32) *Frame {
	return &Frame{
		Camera:       NewCamera(float32(width) / float32(height)),
		Lights:       DefaultLightCollection(),
		Material:     DefaultMaterial(),
		Texture:      DefaultTextureParams(),
		Effect:       EffectNone,
		ScreenWidth:  width,
		ScreenHeight: height,
	}
}

// Tick advances the clock to now (seconds).
func (f *Frame) Tick(now float32) {
	f.DeltaTime = now - f.Time
	f.Time = now
}

// Resize records a new framebuffer size and updates the camera aspect.
func (f *Frame) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	f.ScreenWidth, f.ScreenHeight = width, height
	if f.Camera != nil {
		f.Camera.UpdateAspectRatio(int(width), int(height))
	}
}

// View and Projection are read once per frame by the sequencer.
func (f *Frame) View() mgl32.Mat4       { return f.Camera.ViewMatrix() }
func (f *Frame) Projection() mgl32.Mat4 { return f.Camera.ProjectionMatrix() }
