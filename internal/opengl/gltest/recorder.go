// Package gltest provides a recording opengl.Device for tests that must run
// without a GL context.
package gltest

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Texture is what the recorder knows about a live texture object.
type Texture struct {
	InternalFormat int32
	Width, Height  int32
	Params         map[uint32]int32
	Mipmapped      bool
}

// Recorder implements opengl.Device. Object handles are allocated from a
// single counter starting at 1, so every handle is unique across kinds.
type Recorder struct {
	// Status is returned by CheckFramebufferStatus.
	Status uint32

	Calls []Call

	Framebuffers  map[uint32]bool
	Textures      map[uint32]*Texture
	Renderbuffers map[uint32][2]int32

	// Attachments of each framebuffer, keyed by attachment point.
	Attachments map[uint32]map[uint32]uint32
	DrawBufs    map[uint32][]uint32

	BoundFramebuffer uint32
	ActiveUnit       uint32
	UnitTextures     map[uint32]uint32
	Enabled          map[uint32]bool
	ViewportRect     [4]int32
	ClearRGBA        [4]float32
	Polygon          uint32

	next uint32
}

func NewRecorder() *Recorder {
	return &Recorder{
		Status:        gl.FRAMEBUFFER_COMPLETE,
		Framebuffers:  make(map[uint32]bool),
		Textures:      make(map[uint32]*Texture),
		Renderbuffers: make(map[uint32][2]int32),
		Attachments:   make(map[uint32]map[uint32]uint32),
		DrawBufs:      make(map[uint32][]uint32),
		UnitTextures:  make(map[uint32]uint32),
		Enabled:       make(map[uint32]bool),
		Polygon:       gl.FILL,
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc() uint32 {
	r.next++
	return r.next
}

// Reset forgets recorded calls but keeps object state.
func (r *Recorder) Reset() { r.Calls = nil }

// Names lists recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Count reports how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Index returns the position of the first call named name at or after from,
// or -1.
func (r *Recorder) Index(name string, from int) int {
	for i := from; i < len(r.Calls); i++ {
		if r.Calls[i].Name == name {
			return i
		}
	}
	return -1
}

// Live reports the number of framebuffers, textures and renderbuffers that
// have not been deleted.
func (r *Recorder) Live() int {
	return len(r.Framebuffers) + len(r.Textures) + len(r.Renderbuffers)
}

func (r *Recorder) GenFramebuffer() uint32 {
	id := r.alloc()
	r.Framebuffers[id] = true
	r.Attachments[id] = make(map[uint32]uint32)
	r.record("GenFramebuffer", id)
	return id
}

func (r *Recorder) DeleteFramebuffer(fbo uint32) {
	r.record("DeleteFramebuffer", fbo)
	delete(r.Framebuffers, fbo)
	delete(r.Attachments, fbo)
	delete(r.DrawBufs, fbo)
}

func (r *Recorder) BindFramebuffer(fbo uint32) {
	r.record("BindFramebuffer", fbo)
	r.BoundFramebuffer = fbo
}

func (r *Recorder) FramebufferTexture(attachment, tex uint32) {
	r.record("FramebufferTexture", attachment, tex)
	if a, ok := r.Attachments[r.BoundFramebuffer]; ok {
		a[attachment] = tex
	}
}

func (r *Recorder) FramebufferRenderbuffer(attachment, rbo uint32) {
	r.record("FramebufferRenderbuffer", attachment, rbo)
	if a, ok := r.Attachments[r.BoundFramebuffer]; ok {
		a[attachment] = rbo
	}
}

func (r *Recorder) DrawBuffers(attachments []uint32) {
	r.record("DrawBuffers", append([]uint32(nil), attachments...))
	r.DrawBufs[r.BoundFramebuffer] = append([]uint32(nil), attachments...)
}

func (r *Recorder) CheckFramebufferStatus() uint32 {
	r.record("CheckFramebufferStatus")
	return r.Status
}

func (r *Recorder) GenTexture() uint32 {
	id := r.alloc()
	r.Textures[id] = &Texture{Params: make(map[uint32]int32)}
	r.record("GenTexture", id)
	return id
}

func (r *Recorder) DeleteTexture(tex uint32) {
	r.record("DeleteTexture", tex)
	delete(r.Textures, tex)
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
	r.ActiveUnit = unit
}

func (r *Recorder) BindTexture(tex uint32) {
	r.record("BindTexture", tex)
	r.UnitTextures[r.ActiveUnit] = tex
}

func (r *Recorder) bound() *Texture {
	return r.Textures[r.UnitTextures[r.ActiveUnit]]
}

func (r *Recorder) TexImage2D(internalFormat int32, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage2D", internalFormat, width, height)
	if t := r.bound(); t != nil {
		t.InternalFormat = internalFormat
		t.Width, t.Height = width, height
	}
}

func (r *Recorder) TexParameteri(pname uint32, param int32) {
	r.record("TexParameteri", pname, param)
	if t := r.bound(); t != nil {
		t.Params[pname] = param
	}
}

func (r *Recorder) TexParameterfv(pname uint32, params []float32) {
	r.record("TexParameterfv", pname, append([]float32(nil), params...))
}

func (r *Recorder) GenerateMipmap() {
	r.record("GenerateMipmap")
	if t := r.bound(); t != nil {
		t.Mipmapped = true
	}
}

func (r *Recorder) GenRenderbuffer() uint32 {
	id := r.alloc()
	r.Renderbuffers[id] = [2]int32{}
	r.record("GenRenderbuffer", id)
	return id
}

func (r *Recorder) DeleteRenderbuffer(rbo uint32) {
	r.record("DeleteRenderbuffer", rbo)
	delete(r.Renderbuffers, rbo)
}

func (r *Recorder) RenderbufferStorage(rbo, internalFormat uint32, width, height int32) {
	r.record("RenderbufferStorage", rbo, internalFormat, width, height)
	if _, ok := r.Renderbuffers[rbo]; ok {
		r.Renderbuffers[rbo] = [2]int32{width, height}
	}
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
	r.ViewportRect = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) {
	r.record("ClearColor", cr, cg, cb, ca)
	r.ClearRGBA = [4]float32{cr, cg, cb, ca}
}

func (r *Recorder) Clear(mask uint32) { r.record("Clear", mask) }

func (r *Recorder) Enable(capability uint32) {
	r.record("Enable", capability)
	r.Enabled[capability] = true
}

func (r *Recorder) Disable(capability uint32) {
	r.record("Disable", capability)
	r.Enabled[capability] = false
}

func (r *Recorder) PolygonMode(mode uint32) {
	r.record("PolygonMode", mode)
	r.Polygon = mode
}

func (r *Recorder) BlendFunc(src, dst uint32) { r.record("BlendFunc", src, dst) }

func (r *Recorder) DepthFunc(fn uint32) { r.record("DepthFunc", fn) }

func (r *Recorder) CullFace(mode uint32) { r.record("CullFace", mode) }
