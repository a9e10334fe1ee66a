// Package renderer sequences the three fixed passes of a frame: the lit scene
// into an off-screen target set, the shadow depth pass, and the
// post-processing composite onto the window.
package renderer

import (
	"errors"
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"lighting-sandbox/core"
	"lighting-sandbox/internal/opengl"
	"lighting-sandbox/scene"
)

// Texture units used by the lit and post shaders.
const (
	UnitBase      = 0
	UnitDetail    = 1
	UnitNormal    = 2
	UnitShadowMap = 3
	UnitPost      = 4
)

// Shader is the uniform surface the sequencer drives. *opengl.Program
// implements it.
type Shader interface {
	Use()
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
}

// Drawable issues the draw call for one uploaded mesh.
type Drawable interface {
	Draw()
}

type Programs struct {
	Lit    Shader
	Unlit  Shader
	Shadow Shader
	Post   Shader
}

type Meshes struct {
	Cube     Drawable
	Sphere   Drawable
	Cylinder Drawable
	Plane    Drawable
	Marker   Drawable // drawn once per point light
	Screen   Drawable // fullscreen triangle
}

// Textures are GL handles bound to UnitBase, UnitDetail and UnitNormal.
type Textures struct {
	Base   uint32
	Detail uint32
	Normal uint32
}

// Resources is everything the sequencer draws with. It does not own them.
type Resources struct {
	Programs Programs
	Meshes   Meshes
	Textures Textures
	Scene    *opengl.RenderTargetSet // colour 0 = shaded image, colour 1 = normals
	Shadow   *opengl.RenderTargetSet // must carry a depth texture
}

// Config holds scene layout constants.
type Config struct {
	Cube     core.Transform
	Sphere   core.Transform
	Cylinder core.Transform
	Plane    core.Transform

	MarkerScale float32

	// Half-extent of the box the directional light's shadow covers,
	// centred on ShadowFocus.
	ShadowExtent float32
	ShadowFocus  mgl32.Vec3
}

func DefaultConfig() Config {
	return Config{
		Cube:         core.At(mgl32.Vec3{-2, 0, 0}, 1),
		Sphere:       core.At(mgl32.Vec3{0, 0, 0}, 1),
		Cylinder:     core.At(mgl32.Vec3{2, 0, 0}, 1),
		Plane:        core.At(mgl32.Vec3{0, -1, 0}, 10),
		MarkerScale:  0.5,
		ShadowExtent: 12,
	}
}

var errMissingResource = errors.New("renderer: missing resource")

// Sequencer runs the scene, shadow and post-process stages in that order.
type Sequencer struct {
	dev opengl.Device
	log *zap.Logger
	cfg Config
	res Resources

	objects []object

	// shadowMapLive is set once the shadow stage has written the depth
	// texture and cleared when shadows go off.
	shadowMapLive bool
}

type object struct {
	mesh  Drawable
	model mgl32.Mat4
}

func NewSequencer(dev opengl.Device, log *zap.Logger, cfg Config, res Resources) (*Sequencer, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: device", errMissingResource)
	}
	p, m := res.Programs, res.Meshes
	switch {
	case p.Lit == nil, p.Unlit == nil, p.Shadow == nil, p.Post == nil:
		return nil, fmt.Errorf("%w: program", errMissingResource)
	case m.Cube == nil, m.Sphere == nil, m.Cylinder == nil, m.Plane == nil, m.Marker == nil, m.Screen == nil:
		return nil, fmt.Errorf("%w: mesh", errMissingResource)
	case res.Scene == nil || res.Shadow == nil:
		return nil, fmt.Errorf("%w: render target set", errMissingResource)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sequencer{
		dev: dev,
		log: log,
		cfg: cfg,
		res: res,
		objects: []object{
			{m.Cube, cfg.Cube.Matrix()},
			{m.Sphere, cfg.Sphere.Matrix()},
			{m.Cylinder, cfg.Cylinder.Matrix()},
		},
	}, nil
}

// Resize reallocates the scene target set to a new framebuffer size.
func (s *Sequencer) Resize(width, height int32) error {
	if err := s.res.Scene.Resize(width, height); err != nil {
		return fmt.Errorf("resize scene targets: %w", err)
	}
	s.log.Debug("Scene targets resized", zap.Int32("width", width), zap.Int32("height", height))
	return nil
}

// RenderFrame draws one frame. A failing stage aborts the rest of the frame
// and is returned; the caller may simply render the next one.
func (s *Sequencer) RenderFrame(f *scene.Frame) error {
	if err := s.scenePass(f); err != nil {
		return fmt.Errorf("scene stage: %w", err)
	}
	if err := s.shadowPass(f); err != nil {
		return fmt.Errorf("shadow stage: %w", err)
	}
	if err := s.postPass(f); err != nil {
		return fmt.Errorf("post-process stage: %w", err)
	}
	return nil
}

// drawn returns the lit objects of this frame, plane included when shown.
func (s *Sequencer) drawn(f *scene.Frame) []object {
	if !f.ShowPlane {
		return s.objects
	}
	return append(s.objects[:len(s.objects):len(s.objects)],
		object{s.res.Meshes.Plane, s.cfg.Plane.Matrix()})
}

func (s *Sequencer) lightSpace(f *scene.Frame) mgl32.Mat4 {
	return f.Lights.Directional.LightSpace(s.cfg.ShadowFocus, s.cfg.ShadowExtent)
}

// ── Scene stage ──────────────────────────────────────────────────────────────

func (s *Sequencer) scenePass(f *scene.Frame) error {
	shadowMap, err := s.res.Shadow.DepthTexture()
	if err != nil {
		return err
	}
	if f.Shadows && !s.shadowMapLive {
		// Nothing has been written yet: sample a cleared map (fully lit)
		// rather than whatever the texture held.
		s.res.Shadow.Bind()
		s.dev.Clear(gl.DEPTH_BUFFER_BIT)
	}

	s.res.Scene.Bind()
	s.dev.Enable(gl.DEPTH_TEST)
	if f.Wireframe {
		s.dev.PolygonMode(gl.LINE)
	} else {
		s.dev.PolygonMode(gl.FILL)
	}
	bg := f.Background
	s.dev.ClearColor(bg[0], bg[1], bg[2], 1)
	s.dev.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj, view := f.Projection(), f.View()
	lit, unlit := s.res.Programs.Lit, s.res.Programs.Unlit

	lit.Use()
	lit.SetFloat("time", f.Time)
	lit.SetMat4("_Projection", proj)
	lit.SetMat4("_View", view)
	lit.SetMat4("_LightSpace", s.lightSpace(f))
	setTextureParams(lit, f.Texture)
	setMaterial(lit, f.Material)
	lit.SetVec3("_CameraPosition", f.Camera.Position)
	setDirectionalLight(lit, f.Lights.Directional)
	setSpotLight(lit, f.Lights.Spot)

	lit.SetInt("_Texture1", UnitBase)
	lit.SetInt("_Texture2", UnitDetail)
	lit.SetInt("_Normal", UnitNormal)
	lit.SetInt("_ShadowMap", UnitShadowMap)
	lit.SetInt("useShadows", boolInt(f.Shadows))
	s.bindTexture(UnitBase, s.res.Textures.Base)
	s.bindTexture(UnitDetail, s.res.Textures.Detail)
	s.bindTexture(UnitNormal, s.res.Textures.Normal)
	s.bindTexture(UnitShadowMap, shadowMap)

	point := f.Lights.Point
	positions := f.Lights.PointLightPositions(f.Time)
	for i, pos := range positions {
		lit.Use()
		setPointLight(lit, i, pos, point)

		unlit.Use()
		unlit.SetMat4("_Projection", proj)
		unlit.SetMat4("_View", view)
		unlit.SetMat4("_Model", core.At(pos, s.cfg.MarkerScale).Matrix())
		unlit.SetVec3("_Color", point.Color)
		s.res.Meshes.Marker.Draw()
	}

	lit.Use()
	lit.SetInt("lightCount", int32(len(positions)))
	for _, o := range s.drawn(f) {
		lit.SetMat4("_Model", o.model)
		o.mesh.Draw()
	}
	return nil
}

func (s *Sequencer) bindTexture(unit, tex uint32) {
	s.dev.ActiveTexture(unit)
	s.dev.BindTexture(tex)
}

// ── Shadow stage ─────────────────────────────────────────────────────────────

// shadowPass only binds its program unless shadows are on. The depth it
// writes is sampled by the scene stage of the next frame.
func (s *Sequencer) shadowPass(f *scene.Frame) error {
	sh := s.res.Programs.Shadow
	sh.Use()
	s.shadowMapLive = f.Shadows
	if !f.Shadows {
		return nil
	}

	s.res.Shadow.Bind()
	s.dev.Enable(gl.DEPTH_TEST)
	s.dev.PolygonMode(gl.FILL)
	s.dev.Clear(gl.DEPTH_BUFFER_BIT)

	sh.SetMat4("_LightSpace", s.lightSpace(f))
	for _, o := range s.drawn(f) {
		sh.SetMat4("_Model", o.model)
		o.mesh.Draw()
	}
	return nil
}

// ── Post-process stage ───────────────────────────────────────────────────────

func (s *Sequencer) postPass(f *scene.Frame) error {
	color, err := s.res.Scene.ColorTexture(0)
	if err != nil {
		return err
	}

	s.dev.BindFramebuffer(0)
	s.dev.Viewport(0, 0, f.ScreenWidth, f.ScreenHeight)
	s.dev.Disable(gl.DEPTH_TEST)
	s.dev.PolygonMode(gl.FILL)
	s.dev.Clear(gl.COLOR_BUFFER_BIT)

	post := s.res.Programs.Post
	post.Use()
	s.bindTexture(UnitPost, color)
	post.SetInt("_Texture1", UnitPost)
	post.SetInt("effectIndex", int32(f.Effect.Clamp()))
	post.SetFloat("time", f.Time)
	s.res.Meshes.Screen.Draw()
	return nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
