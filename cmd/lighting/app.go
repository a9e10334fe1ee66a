package main

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"lighting-sandbox/core"
	"lighting-sandbox/input"
	"lighting-sandbox/internal/gui"
	"lighting-sandbox/internal/opengl"
	"lighting-sandbox/renderer"
	"lighting-sandbox/scene"
	"lighting-sandbox/ui"
)

const shadowMapSize = 2048

// app owns every GPU and window resource of the sandbox. Resources are
// released in reverse order of creation by Close.
type app struct {
	log     *zap.Logger
	window  *core.Window
	dev     *opengl.GLDevice
	closers []func()

	programs *renderer.ProgramSet
	seq      *renderer.Sequencer
	frame    *scene.Frame
	ui       *gui.Context
	input    *input.Manager
	camera   *input.Controller
	panels   *ui.ControlSurface

	pendingW, pendingH int
	resized            bool
	failing            bool
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func newApp(log *zap.Logger) (*app, error) {
	a := &app{log: log}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) init() error {
	log := a.log
	var err error

	// ── Window & context ──────────────────────────────────────────────────────
	a.window, err = core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		return err
	}
	a.onClose(a.window.Destroy)

	a.dev, err = opengl.NewGLDevice()
	if err != nil {
		return err
	}
	log.Info("OpenGL initialized", zap.String("version", a.dev.Version()))

	a.dev.Enable(gl.CULL_FACE)
	a.dev.CullFace(gl.BACK)
	a.dev.Enable(gl.BLEND)
	a.dev.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	a.dev.Enable(gl.DEPTH_TEST)
	a.dev.DepthFunc(gl.LESS)

	// ── Programs & targets ────────────────────────────────────────────────────
	a.programs, err = renderer.LoadPrograms(log)
	if err != nil {
		return err
	}
	a.onClose(a.programs.Delete)

	fbW, fbH := a.window.GetFramebufferSize()
	sceneSet, err := opengl.NewRenderTargetSet(a.dev, log, opengl.TargetSetConfig{
		Name:         "scene",
		ColorTargets: 2,
		Width:        int32(fbW),
		Height:       int32(fbH),
		Depth:        opengl.DepthRenderbuffer,
	})
	if err != nil {
		return err
	}
	a.onClose(sceneSet.Destroy)

	shadowSet, err := opengl.NewRenderTargetSet(a.dev, log, opengl.TargetSetConfig{
		Name:         "shadow",
		ColorTargets: 1,
		Width:        shadowMapSize,
		Height:       shadowMapSize,
		Depth:        opengl.DepthTexture,
	})
	if err != nil {
		return err
	}
	a.onClose(shadowSet.Destroy)

	// ── Meshes & textures ─────────────────────────────────────────────────────
	meshes := a.uploadMeshes()
	textures, err := a.uploadTextures()
	if err != nil {
		return err
	}

	a.seq, err = renderer.NewSequencer(a.dev, log, renderer.DefaultConfig(), renderer.Resources{
		Programs: a.programs.Programs(),
		Meshes:   meshes,
		Textures: textures,
		Scene:    sceneSet,
		Shadow:   shadowSet,
	})
	if err != nil {
		return err
	}
	a.frame = scene.NewFrame(int32(fbW), int32(fbH))

	// ── Input & UI ────────────────────────────────────────────────────────────
	// Window callbacks go in before the UI so its platform chains them.
	a.input = input.NewManager(a.window)
	a.window.SetScrollCallback(func(_, yoff float64) {
		a.input.AddScroll(yoff)
	})
	a.window.SetFramebufferSizeCallback(func(w, h int) {
		a.pendingW, a.pendingH = w, h
		a.resized = true
	})

	a.ui, err = gui.New(log, a.window.Handle)
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}
	a.onClose(a.ui.Destroy)

	a.camera = input.NewController(a.input, a.window, a.ui, input.DefaultControllerConfig())
	a.panels = ui.NewControlSurface(a.frame)
	return nil
}

func (a *app) uploadMeshes() renderer.Meshes {
	cube := opengl.UploadMesh(scene.CreateCube(1, 1, 1))
	sphere := opengl.UploadMesh(scene.CreateSphere(0.5, 64))
	cylinder := opengl.UploadMesh(scene.CreateCylinder(1, 0.5, 64))
	plane := opengl.UploadMesh(scene.CreatePlane(2, 2))
	screen := opengl.NewFullscreenTriangle()
	for _, m := range []interface{ Delete() }{cube, sphere, cylinder, plane, screen} {
		a.onClose(m.Delete)
	}
	return renderer.Meshes{
		Cube:     cube,
		Sphere:   sphere,
		Cylinder: cylinder,
		Plane:    plane,
		Marker:   sphere,
		Screen:   screen,
	}
}

func (a *app) uploadTextures() (renderer.Textures, error) {
	loaded := scene.LoadTextures(a.log, scene.DefaultLoaderConfig(),
		scene.TextureRequest{File: "Bricks.png", Fallback: scene.FallbackWhite},
		scene.TextureRequest{File: "Tiles.png", Fallback: scene.FallbackWhite},
		scene.TextureRequest{File: "BricksNormal.png", Fallback: scene.FallbackNormal},
	)
	handles := make([]uint32, len(loaded))
	for i, tex := range loaded {
		h, err := opengl.UploadTexture(a.dev, tex)
		if err != nil {
			return renderer.Textures{}, err
		}
		handles[i] = h
		a.onClose(func() { a.dev.DeleteTexture(h) })
	}
	return renderer.Textures{Base: handles[0], Detail: handles[1], Normal: handles[2]}, nil
}

// Run drives the frame loop until the window closes.
func (a *app) Run() {
	for !a.window.ShouldClose() {
		a.window.PollEvents()
		a.frame.Tick(float32(a.window.Time()))
		a.applyResize()

		a.input.Update()
		a.camera.Update(a.frame)
		a.input.EndFrame()

		a.renderFrame()

		a.ui.NewFrame()
		a.panels.Build()
		a.ui.Render()

		a.window.SwapBuffers()
	}
}

func (a *app) applyResize() {
	if !a.resized {
		return
	}
	a.resized = false
	if a.pendingW <= 0 || a.pendingH <= 0 {
		// Minimised; keep the old targets until the window comes back.
		return
	}
	w, h := int32(a.pendingW), int32(a.pendingH)
	a.frame.Resize(w, h)
	if err := a.seq.Resize(w, h); err != nil {
		a.log.Warn("Resize failed", zap.Int32("width", w), zap.Int32("height", h), zap.Error(err))
	}
}

// renderFrame logs a failing frame once, and again when it recovers.
func (a *app) renderFrame() {
	err := a.seq.RenderFrame(a.frame)
	switch {
	case err != nil && !a.failing:
		a.log.Error("Frame failed", zap.Error(err))
		a.failing = true
	case err == nil && a.failing:
		a.log.Info("Frame rendering recovered")
		a.failing = false
	}
}
