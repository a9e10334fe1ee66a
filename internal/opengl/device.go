package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Device is the subset of GL state and object calls used by render targets,
// texture uploads and the pass sequencer. GLDevice forwards to the current
// OpenGL context; tests substitute a recorder.
type Device interface {
	GenFramebuffer() uint32
	DeleteFramebuffer(fbo uint32)
	BindFramebuffer(fbo uint32)
	FramebufferTexture(attachment, tex uint32)
	FramebufferRenderbuffer(attachment, rbo uint32)
	DrawBuffers(attachments []uint32)
	CheckFramebufferStatus() uint32

	GenTexture() uint32
	DeleteTexture(tex uint32)
	ActiveTexture(unit uint32)
	BindTexture(tex uint32)
	TexImage2D(internalFormat int32, width, height int32, format, xtype uint32, pixels []byte)
	TexParameteri(pname uint32, param int32)
	TexParameterfv(pname uint32, params []float32)
	GenerateMipmap()

	GenRenderbuffer() uint32
	DeleteRenderbuffer(rbo uint32)
	RenderbufferStorage(rbo, internalFormat uint32, width, height int32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Enable(capability uint32)
	Disable(capability uint32)
	PolygonMode(mode uint32)
	BlendFunc(src, dst uint32)
	DepthFunc(fn uint32)
	CullFace(mode uint32)
}

// GLDevice issues calls against the OpenGL context current on this thread.
type GLDevice struct{}

// NewGLDevice loads the GL function pointers. The context must be current.
func NewGLDevice() (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &GLDevice{}, nil
}

// Version reports the driver's GL version string.
func (*GLDevice) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (*GLDevice) GenFramebuffer() uint32 {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	return fbo
}

func (*GLDevice) DeleteFramebuffer(fbo uint32) { gl.DeleteFramebuffers(1, &fbo) }

func (*GLDevice) BindFramebuffer(fbo uint32) { gl.BindFramebuffer(gl.FRAMEBUFFER, fbo) }

func (*GLDevice) FramebufferTexture(attachment, tex uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, tex, 0)
}

func (*GLDevice) FramebufferRenderbuffer(attachment, rbo uint32) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachment, gl.RENDERBUFFER, rbo)
}

func (*GLDevice) DrawBuffers(attachments []uint32) {
	if len(attachments) == 0 {
		gl.DrawBuffer(gl.NONE)
		return
	}
	gl.DrawBuffers(int32(len(attachments)), &attachments[0])
}

func (*GLDevice) CheckFramebufferStatus() uint32 {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
}

func (*GLDevice) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (*GLDevice) DeleteTexture(tex uint32) { gl.DeleteTextures(1, &tex) }

// ActiveTexture selects texture unit GL_TEXTURE0+unit.
func (*GLDevice) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (*GLDevice) BindTexture(tex uint32) { gl.BindTexture(gl.TEXTURE_2D, tex) }

func (*GLDevice) TexImage2D(internalFormat int32, width, height int32, format, xtype uint32, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(&pixels[0])
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, width, height, 0, format, xtype, ptr)
}

func (*GLDevice) TexParameteri(pname uint32, param int32) {
	gl.TexParameteri(gl.TEXTURE_2D, pname, param)
}

func (*GLDevice) TexParameterfv(pname uint32, params []float32) {
	gl.TexParameterfv(gl.TEXTURE_2D, pname, &params[0])
}

func (*GLDevice) GenerateMipmap() { gl.GenerateMipmap(gl.TEXTURE_2D) }

func (*GLDevice) GenRenderbuffer() uint32 {
	var rbo uint32
	gl.GenRenderbuffers(1, &rbo)
	return rbo
}

func (*GLDevice) DeleteRenderbuffer(rbo uint32) { gl.DeleteRenderbuffers(1, &rbo) }

func (*GLDevice) RenderbufferStorage(rbo, internalFormat uint32, width, height int32) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, internalFormat, width, height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (*GLDevice) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (*GLDevice) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (*GLDevice) Clear(mask uint32) { gl.Clear(mask) }

func (*GLDevice) Enable(capability uint32) { gl.Enable(capability) }

func (*GLDevice) Disable(capability uint32) { gl.Disable(capability) }

func (*GLDevice) PolygonMode(mode uint32) { gl.PolygonMode(gl.FRONT_AND_BACK, mode) }

func (*GLDevice) BlendFunc(src, dst uint32) { gl.BlendFunc(src, dst) }

func (*GLDevice) DepthFunc(fn uint32) { gl.DepthFunc(fn) }

func (*GLDevice) CullFace(mode uint32) { gl.CullFace(mode) }
