// Package gui hosts Dear ImGui on a GLFW window with an OpenGL renderer.
package gui

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"
)

// Context owns the ImGui context and its platform and renderer backends.
type Context struct {
	imgui    *imgui.Context
	io       imgui.IO
	platform *Platform
	renderer *Renderer
}

// New creates the ImGui context for window. It must run on the thread that
// owns the GL context, after the GL loader is initialised.
func New(log *zap.Logger, window *glfw.Window) (*Context, error) {
	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	r, err := NewRenderer(log, io)
	if err != nil {
		ctx.Destroy()
		return nil, err
	}
	return &Context{
		imgui:    ctx,
		io:       io,
		platform: NewPlatform(window, io),
		renderer: r,
	}, nil
}

// NewFrame starts UI construction for this frame.
func (c *Context) NewFrame() {
	c.platform.NewFrame()
	imgui.NewFrame()
}

// Render finishes the frame and draws it on the bound framebuffer.
func (c *Context) Render() {
	imgui.Render()
	c.renderer.Render(c.platform.DisplaySize(), c.platform.FramebufferSize(), imgui.RenderedDrawData())
}

// WantsMouse and WantsKeyboard report whether ImGui is using the input, in
// which case the application should ignore it.
func (c *Context) WantsMouse() bool    { return c.io.WantCaptureMouse() }
func (c *Context) WantsKeyboard() bool { return c.io.WantCaptureKeyboard() }

func (c *Context) Destroy() {
	c.renderer.Dispose()
	c.platform.Dispose()
	c.imgui.Destroy()
}
