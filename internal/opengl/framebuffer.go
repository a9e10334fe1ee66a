package opengl

import (
	"errors"
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// MaxColorTargets is the number of colour attachments a set may declare.
// GL 4.1 guarantees at least eight draw buffers.
const MaxColorTargets = 8

var (
	ErrInvalidTargetConfig = errors.New("invalid render target config")
	ErrTargetIndex         = errors.New("color target index out of range")
	ErrNoDepthTexture      = errors.New("render target set has no depth texture")
)

// DepthMode selects how a set stores depth.
type DepthMode int

const (
	// DepthRenderbuffer is write-only depth for ordinary depth testing.
	DepthRenderbuffer DepthMode = iota
	// DepthTexture can be sampled afterwards (shadow maps).
	DepthTexture
)

func (m DepthMode) String() string {
	if m == DepthTexture {
		return "texture"
	}
	return "renderbuffer"
}

// TargetSetConfig describes a RenderTargetSet. DepthWidth and DepthHeight
// default to Width and Height when zero.
type TargetSetConfig struct {
	Name         string
	ColorTargets int
	Width        int32
	Height       int32
	Depth        DepthMode
	DepthWidth   int32
	DepthHeight  int32
}

func DefaultTargetSetConfig(name string, width, height int32) TargetSetConfig {
	return TargetSetConfig{
		Name:         name,
		ColorTargets: 1,
		Width:        width,
		Height:       height,
		Depth:        DepthRenderbuffer,
	}
}

func (c TargetSetConfig) validate() error {
	if c.ColorTargets < 1 || c.ColorTargets > MaxColorTargets {
		return fmt.Errorf("%w: %d color targets (want 1..%d)", ErrInvalidTargetConfig, c.ColorTargets, MaxColorTargets)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidTargetConfig, c.Width, c.Height)
	}
	if c.DepthWidth < 0 || c.DepthHeight < 0 {
		return fmt.Errorf("%w: depth size %dx%d", ErrInvalidTargetConfig, c.DepthWidth, c.DepthHeight)
	}
	return nil
}

// RenderTargetSet is an off-screen framebuffer with N colour textures drawn
// simultaneously (MRT) and one depth attachment.
//
// Construction rebinds TEXTURE_2D on whatever texture unit is active, so
// callers must rebind their own textures afterwards. An incomplete set is
// still returned: it logs a warning and renders undefined contents.
type RenderTargetSet struct {
	dev  Device
	log  *zap.Logger
	name string

	fbo      uint32
	colors   []*TextureTarget
	depth    DepthMode
	depthTex *TextureTarget
	depthRBO uint32

	width, height           int32
	depthWidth, depthHeight int32
	complete                bool
	destroyed               bool
}

// NewRenderTargetSet allocates the framebuffer and its attachments and checks
// completeness. Only an invalid config is an error.
func NewRenderTargetSet(dev Device, log *zap.Logger, cfg TargetSetConfig) (*RenderTargetSet, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	rts := &RenderTargetSet{
		dev:   dev,
		log:   log.With(zap.String("target", cfg.Name)),
		name:  cfg.Name,
		depth: cfg.Depth,
	}
	rts.alloc(cfg.ColorTargets, cfg.Width, cfg.Height, cfg.DepthWidth, cfg.DepthHeight)
	return rts, nil
}

func (rts *RenderTargetSet) alloc(n int, width, height, depthW, depthH int32) {
	if depthW == 0 {
		depthW = width
	}
	if depthH == 0 {
		depthH = height
	}
	rts.width, rts.height = width, height
	rts.depthWidth, rts.depthHeight = depthW, depthH

	rts.fbo = rts.dev.GenFramebuffer()
	rts.dev.BindFramebuffer(rts.fbo)

	rts.colors = make([]*TextureTarget, n)
	attachments := make([]uint32, n)
	for i := range rts.colors {
		rts.colors[i] = newTextureTarget(rts.dev, FormatRGBA8, width, height)
		attachments[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
		rts.dev.FramebufferTexture(attachments[i], rts.colors[i].ID)
	}

	switch rts.depth {
	case DepthTexture:
		rts.depthTex = newTextureTarget(rts.dev, FormatDepth32F, depthW, depthH)
		rts.dev.FramebufferTexture(gl.DEPTH_ATTACHMENT, rts.depthTex.ID)
	default:
		rts.depthRBO = rts.dev.GenRenderbuffer()
		rts.dev.RenderbufferStorage(rts.depthRBO, gl.DEPTH_COMPONENT32F, depthW, depthH)
		rts.dev.FramebufferRenderbuffer(gl.DEPTH_ATTACHMENT, rts.depthRBO)
	}

	rts.dev.DrawBuffers(attachments)

	status := rts.dev.CheckFramebufferStatus()
	sized := depthW == width && depthH == height
	rts.complete = status == gl.FRAMEBUFFER_COMPLETE && sized
	if !rts.complete {
		rts.log.Warn("Render target set incomplete",
			zap.String("status", fmt.Sprintf("0x%X", status)),
			zap.Bool("dimensionsMatch", sized),
			zap.Int32("width", width), zap.Int32("height", height),
			zap.Int32("depthWidth", depthW), zap.Int32("depthHeight", depthH))
	} else {
		rts.log.Info("Render target set created",
			zap.Int("colorTargets", n),
			zap.Stringer("depth", rts.depth),
			zap.Int32("width", width), zap.Int32("height", height))
	}

	rts.dev.BindFramebuffer(0)
}

func (rts *RenderTargetSet) free() {
	for _, t := range rts.colors {
		t.release(rts.dev)
	}
	rts.colors = nil
	rts.depthTex.release(rts.dev)
	rts.depthTex = nil
	if rts.depthRBO != 0 {
		rts.dev.DeleteRenderbuffer(rts.depthRBO)
		rts.depthRBO = 0
	}
	if rts.fbo != 0 {
		rts.dev.DeleteFramebuffer(rts.fbo)
		rts.fbo = 0
	}
}

// Bind makes the set the destination of subsequent draws and sets the
// viewport to its size.
func (rts *RenderTargetSet) Bind() {
	rts.dev.BindFramebuffer(rts.fbo)
	rts.dev.Viewport(0, 0, rts.width, rts.height)
}

// ColorTexture returns the texture handle of colour target index.
func (rts *RenderTargetSet) ColorTexture(index int) (uint32, error) {
	if index < 0 || index >= len(rts.colors) {
		return 0, fmt.Errorf("%w: %s[%d] (have %d)", ErrTargetIndex, rts.name, index, len(rts.colors))
	}
	return rts.colors[index].ID, nil
}

// ColorTarget returns the descriptor of colour target index.
func (rts *RenderTargetSet) ColorTarget(index int) (TextureTarget, error) {
	if index < 0 || index >= len(rts.colors) {
		return TextureTarget{}, fmt.Errorf("%w: %s[%d] (have %d)", ErrTargetIndex, rts.name, index, len(rts.colors))
	}
	return *rts.colors[index], nil
}

// DepthTexture returns the depth texture handle of a DepthTexture set.
func (rts *RenderTargetSet) DepthTexture() (uint32, error) {
	if rts.depthTex == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoDepthTexture, rts.name)
	}
	return rts.depthTex.ID, nil
}

func (rts *RenderTargetSet) Name() string    { return rts.name }
func (rts *RenderTargetSet) Width() int32    { return rts.width }
func (rts *RenderTargetSet) Height() int32   { return rts.height }
func (rts *RenderTargetSet) ColorCount() int { return len(rts.colors) }
func (rts *RenderTargetSet) Complete() bool  { return rts.complete }

// Resize reallocates every attachment at the new size. Depth follows the
// colour size. Handles returned earlier are invalid afterwards.
func (rts *RenderTargetSet) Resize(width, height int32) error {
	if rts.destroyed {
		return fmt.Errorf("resize %s: destroyed", rts.name)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: resize %s to %dx%d", ErrInvalidTargetConfig, rts.name, width, height)
	}
	if width == rts.width && height == rts.height {
		return nil
	}
	n := len(rts.colors)
	rts.free()
	rts.alloc(n, width, height, 0, 0)
	return nil
}

// Destroy releases the framebuffer and every attachment. Later calls are
// no-ops.
func (rts *RenderTargetSet) Destroy() {
	if rts.destroyed {
		return
	}
	rts.free()
	rts.destroyed = true
	rts.log.Debug("Render target set destroyed")
}
